package geo

import (
	"slices"

	"github.com/shiva/cityroute/internal/model"
)

// RankNeighbors returns the k members of pool closest to ref, ascending by
// great-circle distance. Ties keep pool order. When the pool has fewer
// than k members all of them are returned; k <= 0 yields none.
//
// Nothing is cached: the pool shrinks as a search settles cities, so every
// call ranks the pool it is given.
//
// Complexity: O(P log P) where P = len(pool).
func RankNeighbors(ref model.City, pool []model.City, k int) []model.Neighbor {
	if k <= 0 || len(pool) == 0 {
		return []model.Neighbor{}
	}

	ranked := make([]model.Neighbor, len(pool))
	for i, c := range pool {
		ranked[i] = model.Neighbor{City: c, DistanceKm: CityDistanceKm(ref, c)}
	}

	slices.SortStableFunc(ranked, func(a, b model.Neighbor) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// NearestNeighbors is RankNeighbors without the distances.
func NearestNeighbors(ref model.City, pool []model.City, k int) []model.City {
	ranked := RankNeighbors(ref, pool, k)
	out := make([]model.City, len(ranked))
	for i, n := range ranked {
		out[i] = n.City
	}
	return out
}
