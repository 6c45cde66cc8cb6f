// Package ids provides unique identifiers for quadtree nodes.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces globally-unique opaque string identifiers.
// Implementations must be safe for concurrent use.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUID identifiers.
// Collision probability is negligible for any realistic tree size.
type UUID struct{}

// NewID returns a new random UUID string.
func (UUID) NewID() string { return uuid.NewString() }

// Sequential generates "prefix-N" identifiers from an atomic counter.
// Deterministic, for tests and debugging only: ids are unique within one
// generator, not globally.
type Sequential struct {
	Prefix string
	n      atomic.Uint64
}

// NewID returns the next sequential identifier.
func (s *Sequential) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
