package dialog

import "sync"

// userLocks serializes dialog processing per user so rapid successive
// updates from the same user cannot interleave state transitions.
//
// Entries are never evicted: one mutex per distinct user stays allocated
// for the process lifetime. Evicting on dialog reset would race with an
// update still holding the lock, and the footprint is a few dozen bytes
// per user, so the map is left to grow with the user base.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

func (u *userLocks) get(userID int64) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	return l
}
