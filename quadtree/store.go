package quadtree

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/quadgo/codec"
	"github.com/hupe1980/quadgo/geo"
	"github.com/hupe1980/quadgo/ids"
	"github.com/hupe1980/quadgo/kvstore"
)

// Key families in the backing store: a single bootstrap key holding the
// root node id, and one key per node id.
const rootPointerKey = "root"

func nodeKey(id string) string { return "node:" + id }

// NodeStore translates node ids to and from persisted records.
// It owns the root-pointer bootstrap record.
type NodeStore struct {
	kv    kvstore.Store
	codec codec.Codec
	gen   ids.Generator
}

// NewNodeStore creates a NodeStore over the given key-value store.
// If c is nil, codec.Default is used. If gen is nil, UUIDs are generated.
func NewNodeStore(kv kvstore.Store, c codec.Codec, gen ids.Generator) *NodeStore {
	if c == nil {
		c = codec.Default
	}
	if gen == nil {
		gen = ids.UUID{}
	}
	return &NodeStore{kv: kv, codec: c, gen: gen}
}

// Get loads the node record for id.
//
// A store miss here means a child pointer references a record that was
// never persisted, so it is surfaced as a structural fault naming the id,
// still matching kvstore.ErrNotFound via errors.Is.
func (s *NodeStore) Get(ctx context.Context, id string) (*Node, error) {
	data, err := s.kv.Get(ctx, nodeKey(id))
	if err != nil {
		return nil, fmt.Errorf("quadtree: load node %s: %w", id, err)
	}

	var n Node
	if err := s.codec.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("quadtree: decode node %s: %w", id, err)
	}
	return &n, nil
}

// Put persists the node record under its id.
func (s *NodeStore) Put(ctx context.Context, n *Node) error {
	data, err := s.codec.Marshal(n)
	if err != nil {
		return fmt.Errorf("quadtree: encode node %s: %w", n.ID, err)
	}
	if err := s.kv.Put(ctx, nodeKey(n.ID), data); err != nil {
		return fmt.Errorf("quadtree: store node %s: %w", n.ID, err)
	}
	return nil
}

// NewNode creates and persists a fresh empty leaf with the given boundary
// and capacity, returning its id.
func (s *NodeStore) NewNode(ctx context.Context, boundary geo.Rect, capacity int) (string, error) {
	n := &Node{
		ID:       s.gen.NewID(),
		Boundary: boundary,
		Capacity: capacity,
		Points:   []geo.Point{},
	}
	if err := s.Put(ctx, n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// Bootstrap returns the root node id for this store, creating the root on
// first use.
//
// The probe for the root pointer is the one place a store miss is a normal
// outcome: it means the tree has not been initialized yet. Bootstrap is
// idempotent - a second call against the same store observes the existing
// pointer and ignores the supplied boundary and capacity.
func (s *NodeStore) Bootstrap(ctx context.Context, boundary geo.Rect, capacity int) (rootID string, created bool, err error) {
	data, err := s.kv.Get(ctx, rootPointerKey)
	if err == nil {
		return string(data), false, nil
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		return "", false, fmt.Errorf("quadtree: load root pointer: %w", err)
	}

	rootID, err = s.NewNode(ctx, boundary, capacity)
	if err != nil {
		return "", false, err
	}
	if err := s.kv.Put(ctx, rootPointerKey, []byte(rootID)); err != nil {
		return "", false, fmt.Errorf("quadtree: store root pointer: %w", err)
	}
	return rootID, true, nil
}
