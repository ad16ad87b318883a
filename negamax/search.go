package negamax

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

// SearchResult is a score from the root player's point of view and the best
// line found from the searched position. A nil Sequence means no line is
// known, only a score.
type SearchResult struct {
	Score    int
	Sequence []move.Move
}

// Search scores pos to the given depth in turns with a full window. Depth
// only drops when the side to move changes, so a multi-placement turn costs
// one unit of depth.
func (s *Solver) Search(pos game.Position, depth int) SearchResult {
	s.prepare(pos)
	return s.search(pos, depth, -Infinity, Infinity, 0)
}

func (s *Solver) search(pos game.Position, depth, alpha, beta, ply int) SearchResult {
	if s.aborted() {
		return SearchResult{}
	}
	s.nodes.Add(1)

	if pos.Terminal() {
		if pos.Winner() == s.root {
			return SearchResult{Score: WinScore - ply}
		}
		return SearchResult{Score: -(WinScore - ply)}
	}
	if depth <= 0 {
		return SearchResult{Score: s.evaluate(pos)}
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{Score: s.evaluate(pos)}
	}

	key := s.ttKey(pos)
	var hint move.Move
	hasHint := false
	if e, ok := s.ttable.lookup(key); ok {
		if e.depth >= depth {
			switch e.flag {
			case TTExact:
				return SearchResult{Score: e.score, Sequence: e.sequence}
			case TTLower:
				alpha = max(alpha, e.score)
			case TTUpper:
				beta = min(beta, e.score)
			}
			if alpha >= beta {
				return SearchResult{Score: e.score, Sequence: e.sequence}
			}
		}
		hint, hasHint = e.hint()
	}

	origAlpha, origBeta := alpha, beta
	isMax := pos.OnTurn() == s.root
	bestVal := Infinity
	if isMax {
		bestVal = -Infinity
	}
	var bestSeq []move.Move
	searched := false

	for _, m := range s.orderMoves(moves, ply, hint, hasHint) {
		if s.aborted() {
			break
		}
		child, outcome, err := pos.Apply(m)
		if err != nil {
			log.Debug().Err(err).Stringer("move", m).Msg("skipping-candidate")
			continue
		}
		sameTurn := outcome == move.SameMover
		childDepth := depth - 1
		if sameTurn {
			childDepth = depth
		}

		var res SearchResult
		if !searched || (sameTurn && !s.params.NullWindowSameTurn) {
			res = s.search(child, childDepth, alpha, beta, ply+1)
		} else {
			// null window from the mover's side
			lo, hi := alpha, alpha+1
			if !isMax {
				lo, hi = beta-1, beta
			}
			res = s.search(child, childDepth, lo, hi, ply+1)
			if res.Score > alpha && res.Score < beta {
				res = s.search(child, childDepth, alpha, beta, ply+1)
			}
		}
		searched = true

		improved := (isMax && res.Score > bestVal) || (!isMax && res.Score < bestVal)
		if improved {
			bestVal = res.Score
			if sameTurn && len(res.Sequence) > 0 {
				bestSeq = make([]move.Move, 0, 1+len(res.Sequence))
				bestSeq = append(bestSeq, m)
				bestSeq = append(bestSeq, res.Sequence...)
			} else {
				bestSeq = []move.Move{m}
			}
		}
		if isMax {
			alpha = max(alpha, bestVal)
		} else {
			beta = min(beta, bestVal)
		}
		if beta <= alpha {
			if !sameTurn {
				s.killers.store(ply, m)
				s.history.add(m, depth)
			}
			break
		}
	}

	if s.aborted() {
		return SearchResult{}
	}
	if !searched {
		return SearchResult{Score: s.evaluate(pos)}
	}

	entry := TableEntry{score: bestVal, depth: depth, sequence: bestSeq}
	switch {
	case bestVal <= origAlpha:
		entry.flag = TTUpper
	case bestVal >= origBeta:
		entry.flag = TTLower
	default:
		entry.flag = TTExact
	}
	s.ttable.store(key, entry)
	return SearchResult{Score: bestVal, Sequence: bestSeq}
}
