package negamax

import "github.com/domino14/oust/move"

const historyOverflow = 10_000_000

// historyTable accumulates depth² for every move that caused a cutoff. It is
// decayed, not cleared, between decisions.
type historyTable struct {
	dim     int
	weights []int
}

// resize reallocates (and so forgets everything) only if dim changed.
func (h *historyTable) resize(dim int) {
	if h.dim == dim && h.weights != nil {
		return
	}
	h.dim = dim
	h.weights = make([]int, dim*dim)
}

func (h *historyTable) index(m move.Move) (int, bool) {
	if m.Row < 0 || m.Col < 0 || m.Row >= h.dim || m.Col >= h.dim {
		return 0, false
	}
	return m.Row*h.dim + m.Col, true
}

func (h *historyTable) get(m move.Move) int {
	if idx, ok := h.index(m); ok {
		return h.weights[idx]
	}
	return 0
}

func (h *historyTable) add(m move.Move, depth int) {
	idx, ok := h.index(m)
	if !ok {
		return
	}
	h.weights[idx] += depth * depth
	if h.weights[idx] > historyOverflow {
		h.scale(2)
	}
}

func (h *historyTable) decay(factor int) {
	if factor > 1 {
		h.scale(factor)
	}
}

func (h *historyTable) scale(divisor int) {
	for i := range h.weights {
		h.weights[i] /= divisor
	}
}
