// Package service contains the core route planning logic.
package service

import (
	"container/heap"
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/shiva/cityroute/internal/model"
	"github.com/shiva/cityroute/pkg/geo"
)

// ─── Search state ───────────────────────────────────────────

// SearchState is the lifecycle of one shortest-path run.
type SearchState int

const (
	StateInitialized SearchState = iota
	StateRunning
	StateFound
	StateExhausted
)

func (s SearchState) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ─── Options ────────────────────────────────────────────────

// SnapshotObserver receives the best-known path to the destination after
// every relaxation that improved a tentative distance.
type SnapshotObserver func(model.PathSnapshot)

type searchOptions struct {
	neighborCount int
	stepDelay     time.Duration
	observer      SnapshotObserver
}

// Option customizes a PathFinder or a single FindPath call.
type Option func(*searchOptions)

// WithNeighborCount sets k, the number of nearest unsettled cities each
// settled city is linked to.
func WithNeighborCount(k int) Option {
	return func(o *searchOptions) { o.neighborCount = k }
}

// WithStepDelay pauses between relaxation steps so a live renderer can keep
// up. Results do not depend on it.
func WithStepDelay(d time.Duration) Option {
	return func(o *searchOptions) { o.stepDelay = d }
}

// WithObserver registers a per-step snapshot callback.
func WithObserver(fn SnapshotObserver) Option {
	return func(o *searchOptions) { o.observer = fn }
}

// ─── PathFinder ─────────────────────────────────────────────

// PathFinder runs Dijkstra's algorithm over the k-nearest proximity graph
// of a catalog.
//
// Edges are derived per step: when a city is settled, its neighbors are the
// k nearest cities still on the frontier. A true shortest path running
// through an already-settled city outside those k can therefore be missed;
// results are exact only for the restricted graph.
//
// Every FindPath call owns its node set and frontier, so a PathFinder is
// safe for concurrent use.
//
// Complexity per run: O(N² log N) for N cities, since each of the N settle
// steps ranks up to N frontier members.
type PathFinder struct {
	catalog  *Catalog
	defaults searchOptions
}

// NewPathFinder creates a finder over catalog. Defaults: k = 3, no delay,
// no observer.
func NewPathFinder(catalog *Catalog, opts ...Option) *PathFinder {
	defaults := searchOptions{neighborCount: geo.DefaultNeighborCount}
	for _, opt := range opts {
		opt(&defaults)
	}
	return &PathFinder{catalog: catalog, defaults: defaults}
}

// Catalog returns the catalog the finder searches.
func (f *PathFinder) Catalog() *Catalog { return f.catalog }

// FindPath computes the shortest path from start to end (city names).
//
// An unreachable destination is not an error: the returned leg has
// Reachable=false, DistanceKm=+Inf and an empty path. Errors are returned
// only for unknown city names and for ctx cancellation, which is checked
// between relaxation steps.
func (f *PathFinder) FindPath(ctx context.Context, start, end string, opts ...Option) (*model.Leg, error) {
	options := f.defaults
	for _, opt := range opts {
		opt(&options)
	}

	from, err := f.catalog.Resolve(start)
	if err != nil {
		return nil, err
	}
	to, err := f.catalog.Resolve(end)
	if err != nil {
		return nil, err
	}

	run := newSearchRun(f.catalog, from, to, options)
	if err := run.execute(ctx); err != nil {
		log.Printf("[route] %s → %s: cancelled after %d steps", from.Name, to.Name, run.steps)
		return nil, fmt.Errorf("search %s → %s: %w", from.Name, to.Name, err)
	}

	leg := run.result()
	if leg.Reachable {
		log.Printf("[route] %s → %s: %.2f km via %d cities in %d steps",
			from.Name, to.Name, leg.DistanceKm, len(leg.Cities), leg.Steps)
	} else {
		log.Printf("[route] %s → %s: no path under k=%d after %d steps",
			from.Name, to.Name, options.neighborCount, leg.Steps)
	}
	return leg, nil
}

// ─── searchRun ──────────────────────────────────────────────

// searchRun is the state of a single FindPath call. It is never shared.
type searchRun struct {
	catalog *Catalog
	graph   *geo.ProximityGraph
	opts    searchOptions

	nodes    []*searchNode
	frontier frontier
	start    *searchNode
	end      *searchNode

	state SearchState
	steps int
}

func newSearchRun(catalog *Catalog, from, to model.City, opts searchOptions) *searchRun {
	cities := catalog.Cities()
	run := &searchRun{
		catalog:  catalog,
		graph:    geo.NewProximityGraph(cities, opts.neighborCount),
		opts:     opts,
		nodes:    make([]*searchNode, len(cities)),
		frontier: make(frontier, 0, len(cities)),
	}

	for i, c := range cities {
		node := newSearchNode(c, i)
		run.nodes[i] = node
		run.frontier = append(run.frontier, node)
		node.heapIdx = i
	}
	run.start = run.nodes[catalog.position(from.Name)]
	run.end = run.nodes[catalog.position(to.Name)]
	run.start.distance = 0

	heap.Init(&run.frontier)
	run.state = StateInitialized
	return run
}

func (r *searchRun) execute(ctx context.Context) error {
	r.state = StateRunning

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := r.frontier.peek()
		if current == nil || math.IsInf(current.distance, 1) {
			r.state = StateExhausted
			return nil
		}
		if current == r.end {
			r.state = StateFound
			return nil
		}

		heap.Pop(&r.frontier)
		current.settled = true
		r.steps++

		r.relax(current)

		if err := r.pace(ctx); err != nil {
			return err
		}
	}
}

// relax updates the k nearest unsettled cities of current.
func (r *searchRun) relax(current *searchNode) {
	for _, n := range r.graph.SearchNeighbors(current.city, r.unsettled()) {
		node := r.nodes[r.catalog.position(n.City.Name)]

		candidate := current.distance + n.DistanceKm
		if candidate >= node.distance {
			continue
		}

		node.distance = candidate
		node.previous = current
		heap.Fix(&r.frontier, node.heapIdx)

		if r.opts.observer != nil {
			r.opts.observer(model.PathSnapshot{
				Step:       r.steps,
				Settled:    current.city.Name,
				Relaxed:    node.city.Name,
				Path:       r.pathTo(r.end),
				DistanceKm: r.end.distance,
			})
		}
	}
}

// unsettled returns frontier cities in catalog order.
func (r *searchRun) unsettled() []model.City {
	out := make([]model.City, 0, len(r.frontier))
	for _, n := range r.nodes {
		if !n.settled {
			out = append(out, n.city)
		}
	}
	return out
}

func (r *searchRun) pace(ctx context.Context) error {
	if r.opts.stepDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.opts.stepDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// chainTo walks predecessor links from target back to the start and returns
// the nodes in travel order. It returns nil when target is not yet reached
// or the chain does not end at the start. The walk is bounded by the node
// count, so a corrupt chain cannot loop.
func (r *searchRun) chainTo(target *searchNode) []*searchNode {
	if math.IsInf(target.distance, 1) {
		return nil
	}

	chain := make([]*searchNode, 0, 8)
	for n := target; n != nil; n = n.previous {
		if len(chain) == len(r.nodes) {
			return nil
		}
		chain = append(chain, n)
	}
	if chain[len(chain)-1] != r.start {
		return nil
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (r *searchRun) pathTo(target *searchNode) []model.Location {
	chain := r.chainTo(target)
	path := make([]model.Location, len(chain))
	for i, n := range chain {
		path[i] = n.city.Location
	}
	return path
}

func (r *searchRun) result() *model.Leg {
	leg := &model.Leg{
		From:       r.start.city,
		To:         r.end.city,
		Path:       []model.Location{},
		Cities:     []string{},
		DistanceKm: math.Inf(1),
		Steps:      r.steps,
	}
	if r.state != StateFound {
		return leg
	}

	chain := r.chainTo(r.end)
	leg.Reachable = true
	leg.DistanceKm = r.end.distance
	leg.Path = make([]model.Location, len(chain))
	leg.Cities = make([]string, len(chain))
	for i, n := range chain {
		leg.Path[i] = n.city.Location
		leg.Cities[i] = n.city.Name
	}
	return leg
}
