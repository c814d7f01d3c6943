package feedtree

import "sync/atomic"

type ownerGuard struct {
	busy atomic.Bool
}

func (g *ownerGuard) enter() func() {
	if !g.busy.CompareAndSwap(false, true) {
		panic("feedtree: concurrent access to Tree; it must only be used from the UI goroutine")
	}
	return func() { g.busy.Store(false) }
}
