package geo

import "github.com/shiva/cityroute/internal/model"

// ProximityGraph is the implicit graph where each city is linked to its k
// nearest candidates. No adjacency is stored: edges are derived from
// coordinates on every call, against one of two candidate pools.
//
//   - Static mode: the whole catalog except the city itself. Used for the
//     connections overview, independent of any search.
//   - Search mode: the cities still on a search frontier. Settled cities
//     never reappear as neighbors.
type ProximityGraph struct {
	cities []model.City
	k      int
}

// NewProximityGraph builds a graph view over an ordered catalog.
// A negative k is treated as 0.
func NewProximityGraph(cities []model.City, k int) *ProximityGraph {
	if k < 0 {
		k = 0
	}
	return &ProximityGraph{cities: cities, k: k}
}

// K returns the neighbor count.
func (g *ProximityGraph) K() int { return g.k }

// StaticNeighbors returns the k nearest catalog cities to city (static mode).
func (g *ProximityGraph) StaticNeighbors(city model.City) []model.Neighbor {
	return RankNeighbors(city, without(g.cities, city.Name), g.k)
}

// SearchNeighbors returns the k nearest members of frontier to city
// (search mode). The caller passes the unsettled cities in catalog order.
func (g *ProximityGraph) SearchNeighbors(city model.City, frontier []model.City) []model.Neighbor {
	return RankNeighbors(city, without(frontier, city.Name), g.k)
}

// Connections returns the static neighbor list of every city, in catalog order.
//
// Complexity: O(N² log N)
func (g *ProximityGraph) Connections() []model.Connection {
	out := make([]model.Connection, 0, len(g.cities))
	for _, c := range g.cities {
		out = append(out, model.Connection{City: c, Neighbors: g.StaticNeighbors(c)})
	}
	return out
}

func without(pool []model.City, name string) []model.City {
	out := make([]model.City, 0, len(pool))
	for _, c := range pool {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}
