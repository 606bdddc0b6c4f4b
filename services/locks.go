package services

import "sync"

// gameLocks serializes mutating operations per game. The web layer handles
// one request at a time per operator in practice, but two overlapping toggles
// on the same game must never both see it unfrozen.
type gameLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for gameID and returns the matching unlock.
func (g *gameLocks) Lock(gameID uint) func() {
	g.mu.Lock()
	l, ok := g.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[gameID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
