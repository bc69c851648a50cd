package booking

import "sync"

// hostLocks serializes booking commits per host. The conflict domain is
// scoped to a single host, so two guests booking different hosts never
// contend. The ledger's conditional append guards the multi-instance case;
// this keeps a single process from even racing that far.
type hostLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newHostLocks() *hostLocks {
	return &hostLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *hostLocks) forHost(hostID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[hostID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[hostID] = m
	}
	return m
}
