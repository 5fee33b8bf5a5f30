package usecase

import "sync"

// sessionLocks hands out one mutex per session id and forgets it once no
// caller holds or waits for it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[string]*sessionLock),
	}
}

// lock - blocks until the session is free and returns its unlock func.
func (that *sessionLocks) lock(id string) func() {
	that.mu.Lock()
	l, ok := that.locks[id]
	if !ok {
		l = &sessionLock{}
		that.locks[id] = l
	}
	l.refs++
	that.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		that.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}
