package usecase

import "sync"

// JobLocker serializes operations on the same job id inside one process.
// Locks for different jobs never contend.
type JobLocker struct {
	mu    sync.Mutex
	locks map[string]*jobLock
}

type jobLock struct {
	mu   sync.Mutex
	refs int
}

func NewJobLocker() *JobLocker {
	return &JobLocker{locks: make(map[string]*jobLock)}
}

// Lock blocks until the job is free and returns the matching unlock func.
func (l *JobLocker) Lock(jobID string) (unlock func()) {
	l.mu.Lock()
	jl, ok := l.locks[jobID]
	if !ok {
		jl = &jobLock{}
		l.locks[jobID] = jl
	}
	jl.refs++
	l.mu.Unlock()

	jl.mu.Lock()
	return func() {
		jl.mu.Unlock()
		l.mu.Lock()
		jl.refs--
		if jl.refs == 0 {
			delete(l.locks, jobID)
		}
		l.mu.Unlock()
	}
}
