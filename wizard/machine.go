package wizard

import (
	"log"
	"strings"
	"sync"

	"github.com/Soborbo/bristolhouseclearances/validation"
)

// minPostcodeLength is the trimmed length a postcode needs before the address step can advance
const minPostcodeLength = 5

// Machine owns the wizard state and persists it after every transition
type Machine struct {
	mu    sync.Mutex
	state State
	repo  StateRepository
}

// NewMachine creates a Machine, resuming from repo when it holds a usable snapshot
func NewMachine(repo StateRepository) *Machine {
	state, ok := repo.Load()
	if ok {
		log.Printf("✓ Wizard: Resumed at step %d", state.CurrentStep)
	} else {
		state = InitialState()
	}
	return &Machine{state: state, repo: repo}
}

// Dispatch applies action and saves the result. A failed save is logged and the
// in-memory state still advances.
func (m *Machine) Dispatch(action Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = Reduce(m.state, action)
	if err := m.repo.Save(m.state); err != nil {
		log.Printf("⚠️  Wizard: Failed to save state: %v", err)
	}
	return m.state.clone()
}

// State returns a copy of the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// CanAdvance reports whether the current step has what it needs to move on
func CanAdvance(state State) bool {
	switch state.CurrentStep {
	case 1:
		return len(state.Items) > 0
	case 2:
		return true
	case 3:
		return strings.TrimSpace(state.Address.Line1) != "" &&
			len(strings.TrimSpace(state.Address.Postcode)) >= minPostcodeLength
	case 4:
		return len(validation.CheckContactFields(state.Contact, state.Consent)) == 0
	default:
		return false
	}
}
