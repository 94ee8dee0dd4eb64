package results

import "sync"

// MemoryStore keeps runs in process memory. It backs tests and one-shot
// runs where standing up Redis is not worthwhile.
type MemoryStore struct {
	// runs is a map from a run ID to its result.
	runs map[string]*RunResult
	// runsMux guards runs from concurrent reads and writes, where writes
	// arrive from the worker and reads from the serving API.
	runsMux *sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    map[string]*RunResult{},
		runsMux: &sync.RWMutex{},
	}
}

func (s *MemoryStore) Save(result *RunResult) error {
	s.runsMux.Lock()
	s.runs[result.ID] = result
	s.runsMux.Unlock()
	return nil
}

func (s *MemoryStore) Get(id string) (*RunResult, error) {
	s.runsMux.RLock()
	result, exists := s.runs[id]
	s.runsMux.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	return result, nil
}
