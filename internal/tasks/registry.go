package tasks

import (
	"fmt"
	"sync"
	"time"
)

// Task statuses. A task is mutated exactly once after creation: the single
// transition from running to completed or error.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// Descriptor is the externally visible state of one scrape task. Data is
// populated on completion, Details on error.
type Descriptor struct {
	TaskID  string         `json:"task_id"`
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Details string         `json:"details,omitempty"`
}

// Registry tracks in-flight and finished scrape tasks in memory. It
// decouples fire-and-forget workers from synchronous status queries: exactly
// one worker writes each entry while any number of HTTP readers poll it.
// State is process-local and lost on restart.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Descriptor)}
}

// NewTaskID derives a process-unique task id for a platform.
func NewTaskID(platform string) string {
	return fmt.Sprintf("%s_%d", platform, time.Now().Unix())
}

// Create registers a new running task.
func (r *Registry) Create(taskID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[taskID] = Descriptor{
		TaskID:  taskID,
		Status:  StatusRunning,
		Message: message,
	}
}

// Complete marks a task finished with its result payload.
func (r *Registry) Complete(taskID, message string, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[taskID] = Descriptor{
		TaskID:  taskID,
		Status:  StatusCompleted,
		Message: message,
		Data:    data,
	}
}

// Fail marks a task failed. Details carries diagnostic text such as a
// response body or stack trace.
func (r *Registry) Fail(taskID, message, details string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[taskID] = Descriptor{
		TaskID:  taskID,
		Status:  StatusError,
		Message: message,
		Details: details,
	}
}

// Get returns a copy of the task state.
func (r *Registry) Get(taskID string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tasks[taskID]
	return d, ok
}
