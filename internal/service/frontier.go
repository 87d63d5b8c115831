package service

import (
	"math"

	"github.com/shiva/cityroute/internal/model"
)

// searchNode is the per-run mutable record for one catalog city.
type searchNode struct {
	city     model.City
	position int // catalog order, used for tie-breaks
	distance float64
	previous *searchNode
	settled  bool
	heapIdx  int
}

// frontier is a binary min-heap of unsettled nodes keyed by tentative
// distance. Equal distances pop in catalog order, so the first city in
// catalog order wins a tie.
type frontier []*searchNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].distance != f[j].distance {
		return f[i].distance < f[j].distance
	}
	return f[i].position < f[j].position
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].heapIdx = i
	f[j].heapIdx = j
}

func (f *frontier) Push(x any) {
	n := x.(*searchNode)
	n.heapIdx = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.heapIdx = -1
	*f = old[:n-1]
	return node
}

// peek returns the minimum node without removing it.
func (f frontier) peek() *searchNode {
	if len(f) == 0 {
		return nil
	}
	return f[0]
}

func newSearchNode(city model.City, position int) *searchNode {
	return &searchNode{
		city:     city,
		position: position,
		distance: math.Inf(1),
		heapIdx:  -1,
	}
}
