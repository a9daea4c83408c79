package core

import "container/heap"

// Step is a coordinate paired with a search cost (spent or remaining, depending on the search)
type Step struct {
	Pos  Coordinate
	Cost int
}

type stepHeap struct {
	items []Step
	max   bool
}

func (h *stepHeap) Len() int { return len(h.items) }
func (h *stepHeap) Less(i, j int) bool {
	if h.max {
		return h.items[i].Cost > h.items[j].Cost
	}
	return h.items[i].Cost < h.items[j].Cost
}
func (h *stepHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *stepHeap) Push(x any)    { h.items = append(h.items, x.(Step)) }
func (h *stepHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Frontier is a priority queue of search steps
type Frontier struct {
	h stepHeap
}

// NewMinFrontier pops the cheapest step first
func NewMinFrontier() *Frontier { return &Frontier{} }

// NewMaxFrontier pops the step with the highest cost first
func NewMaxFrontier() *Frontier { return &Frontier{h: stepHeap{max: true}} }

func (f *Frontier) Len() int    { return f.h.Len() }
func (f *Frontier) Push(s Step) { heap.Push(&f.h, s) }
func (f *Frontier) Pop() Step   { return heap.Pop(&f.h).(Step) }
func (f *Frontier) Peek() Step  { return f.h.items[0] }
