package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
)

// InMemoryTaskStore is a trivial in-process a2asrv.TaskStore implementation
// useful for tests, examples and single-process deployments. Tasks are kept
// in a map guarded by an RWMutex and deep-copied on save / retrieval to avoid
// accidental external mutation of stored state.
//
// This implementation is intentionally minimal; it does not enforce retention
// limits or eviction and does not survive process restarts.
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[a2a.TaskID]*a2a.Task
}

// NewInMemoryTaskStore returns an empty in-memory task store.
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{tasks: make(map[a2a.TaskID]*a2a.Task)}
}

// Save stores (or overwrites) the task. The task is copied before storage.
func (s *InMemoryTaskStore) Save(_ context.Context, task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	cp, err := cloneTask(task)
	if err != nil {
		return fmt.Errorf("failed to copy task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = cp
	return nil
}

// Get returns a copy of the stored task or a2a.ErrTaskNotFound.
func (s *InMemoryTaskStore) Get(_ context.Context, taskID a2a.TaskID) (*a2a.Task, error) {
	s.mu.RLock()
	task, ok := s.tasks[taskID]
	s.mu.RUnlock()
	if !ok {
		return nil, a2a.ErrTaskNotFound
	}

	cp, err := cloneTask(task)
	if err != nil {
		return nil, fmt.Errorf("failed to copy task: %w", err)
	}
	return cp, nil
}

// Len returns the number of stored tasks.
func (s *InMemoryTaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// cloneTask deep-copies a task via its JSON representation. Tasks carry
// nested slices and maps, so a round trip is the safe way to detach them.
func cloneTask(task *a2a.Task) (*a2a.Task, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	var cp a2a.Task
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Ensure InMemoryTaskStore implements a2asrv.TaskStore.
var _ a2asrv.TaskStore = (*InMemoryTaskStore)(nil)
