package negamax

import "github.com/domino14/oust/move"

const (
	MaxPly     = 100
	MaxKillers = 2
)

type killerSlot struct {
	m  move.Move
	ok bool
}

// killerTable keeps, per ply from the root, the last two moves that caused
// a cutoff there.
type killerTable [MaxPly][MaxKillers]killerSlot

func (k *killerTable) store(ply int, m move.Move) {
	if ply >= MaxPly {
		return
	}
	if k[ply][0].ok && k[ply][0].m == m {
		return
	}
	k[ply][1] = k[ply][0]
	k[ply][0] = killerSlot{m: m, ok: true}
}

func (k *killerTable) isKiller(ply int, m move.Move) bool {
	if ply >= MaxPly {
		return false
	}
	return (k[ply][0].ok && k[ply][0].m == m) || (k[ply][1].ok && k[ply][1].m == m)
}

// Clear the killer moves table.
func (k *killerTable) clear() {
	*k = killerTable{}
}
