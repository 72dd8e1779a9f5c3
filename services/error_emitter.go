package services

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

// PermissionListener receives permission-error events for diagnostics.
type PermissionListener func(models.PermissionEvent)

// ErrorEmitter is the process-wide bus for permission-error events. Local
// state is always reconciled before an event goes out, so listeners observe
// post-rollback state.
type ErrorEmitter struct {
	mu        sync.Mutex
	listeners []PermissionListener
	emitted   int
}

func NewErrorEmitter() *ErrorEmitter {
	return &ErrorEmitter{}
}

func (e *ErrorEmitter) Subscribe(l PermissionListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Emit dispatches a permission-error event synchronously to all listeners.
func (e *ErrorEmitter) Emit(path, operation string, requestData map[string]any) {
	event := models.PermissionEvent{
		ID:                  uuid.NewString(),
		Path:                path,
		Operation:           operation,
		RequestResourceData: requestData,
	}

	e.mu.Lock()
	e.emitted++
	listeners := make([]PermissionListener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}

// EmitError emits from a *store.PermissionError, using its recorded path and
// operation. Non-permission errors are reported with the fallback values so
// a denial is never silently swallowed.
func (e *ErrorEmitter) EmitError(err error, fallbackPath, fallbackOp string, requestData map[string]any) {
	if pe, ok := store.AsPermissionError(err); ok {
		data := pe.RequestResourceData
		if data == nil {
			data = requestData
		}
		e.Emit(pe.Path, pe.Operation, data)
		return
	}
	e.Emit(fallbackPath, fallbackOp, requestData)
}

// Emitted reports how many events have been dispatched.
func (e *ErrorEmitter) Emitted() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emitted
}

// LogListener is the default diagnostics sink.
func LogListener(event models.PermissionEvent) {
	log.Printf("❌ Permission denied: %s %s (event %s)", event.Operation, event.Path, event.ID)
}
