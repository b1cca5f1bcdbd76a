package creator

import (
	"context"
	"fmt"
	"sync"

	"github.com/formscribe/go-formscribe/pkg/form"
)

// Memory records created forms in process memory. It backs tests and dry
// runs, where a real forms backend is unavailable or undesirable.
type Memory struct {
	mu    sync.Mutex
	forms []form.FormDefinition
}

var _ Creator = (*Memory)(nil)

// NewMemory returns an empty in-memory creator.
func NewMemory() *Memory {
	return &Memory{}
}

// Create records the definition and fabricates stable URLs from its ordinal.
func (m *Memory) Create(_ context.Context, definition form.FormDefinition) (CreatedForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.forms = append(m.forms, definition)
	id := fmt.Sprintf("mem-%d", len(m.forms))
	return CreatedForm{
		ID:      id,
		URL:     fmt.Sprintf("memory://forms/%s", id),
		EditURL: fmt.Sprintf("memory://forms/%s/edit", id),
	}, nil
}

// Forms returns a copy of every recorded definition in creation order.
func (m *Memory) Forms() []form.FormDefinition {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]form.FormDefinition, len(m.forms))
	copy(out, m.forms)
	return out
}
