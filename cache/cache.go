// Package cache shares the read-only tables that every game on a given board
// size needs. Building Zobrist keys for a large board is not free, and every
// game, solver and bot request on that size can use the same set.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/oust/zobrist"
)

type tableKey struct {
	dim  int
	seed string
}

type zobristCache struct {
	sync.Mutex
	tables map[tableKey]*zobrist.Zobrist
}

var zobristTables = &zobristCache{tables: make(map[tableKey]*zobrist.Zobrist)}

func (c *zobristCache) get(dim int, seed string) *zobrist.Zobrist {
	c.Lock()
	defer c.Unlock()
	k := tableKey{dim: dim, seed: seed}
	if z, ok := c.tables[k]; ok {
		return z
	}
	log.Debug().Int("dim", dim).Str("seed", seed).Msg("building-zobrist-tables")
	z := &zobrist.Zobrist{}
	z.Initialize(dim, seed)
	c.tables[k] = z
	return z
}

// ZobristTables returns the key tables for a dim x dim grid, building them
// the first time a (dim, seed) pair is asked for. An empty seed still builds
// one random set per dim, which is then shared.
func ZobristTables(dim int, seed string) *zobrist.Zobrist {
	return zobristTables.get(dim, seed)
}
