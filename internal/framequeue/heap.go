package framequeue

import "container/heap"

// finishedHeap is a container/heap.Interface priority queue of
// FinishedRecords ordered by forget-time ascending: the least element is
// the next record eligible for removal. Records with no finite forget-at
// (HasForgetAt == false) always compare greater than any finite one, so
// they surface last — this is the inverse of the natural ordering on
// time.Time, which is why it is hidden behind this comparator rather than
// exposed on FinishedRecord itself.
type finishedHeap []FinishedRecord

func (h finishedHeap) Len() int { return len(h) }

func (h finishedHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	switch {
	case !a.HasForgetAt && !b.HasForgetAt:
		return false
	case !a.HasForgetAt:
		return false
	case !b.HasForgetAt:
		return true
	default:
		return a.ForgetAt.Before(b.ForgetAt)
	}
}

func (h finishedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *finishedHeap) Push(x any) {
	*h = append(*h, x.(FinishedRecord))
}

func (h *finishedHeap) Pop() any {
	old := *h
	n := len(old)
	rec := old[n-1]
	*h = old[:n-1]
	return rec
}

var _ heap.Interface = (*finishedHeap)(nil)
