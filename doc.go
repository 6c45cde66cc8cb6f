// Package quadgo provides a persistent 2D spatial index for Go: a point
// quadtree whose nodes live as individual records in a durable key-value
// store instead of an in-memory pointer structure.
//
// Features:
//
//   - Point insertion with an attached opaque payload
//   - Axis-aligned bounding-box range queries
//   - Approximate (bounded-radius) nearest-point lookup
//   - In-place payload update by exact coordinate match
//   - Pluggable storage backends: in-memory, local filesystem, Redis,
//     DynamoDB, MinIO/S3-compatible
//   - Pluggable codecs (stdlib JSON, goccy go-json, S2-compressed)
//
// The store is the single source of truth: every operation re-reads nodes
// from it, one round-trip per node visited, and writes back only what it
// mutates. A tree therefore survives process restarts - reopening against
// the same store path picks up the existing root.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	store, err := kvstore.NewLocal("./data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Universe [0,100]x[0,100], up to 4 points per leaf.
//	qt, err := quadgo.Open(ctx, store, geo.NewRect(50, 50, 50, 50), 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer qt.Close()
//
//	if err := qt.Insert(ctx, 10, 10, map[string]any{"name": "depot"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	points, err := qt.Range(ctx, 0, 0, 25, 25)
//
//	nearest, ok, err := qt.Nearest(ctx, 12, 12)
//
//	err = qt.Update(ctx, 10, 10, map[string]any{"name": "warehouse"})
//
// # Limitations
//
// Nearest is a bounded search: it only considers points inside the radius
// square and never widens the search when the square is empty. There is no
// point deletion, no rebalancing, and no multi-writer coordination beyond
// the facade's own mutex - concurrent writers against the same store need
// external mutual exclusion.
package quadgo
