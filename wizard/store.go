package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/validation"
)

// SessionKey is the fixed key the wizard snapshot is stored under
const SessionKey = "bhc-calculator"

// StateRepository persists the resumable part of the wizard state
type StateRepository interface {
	// Load returns the stored state, or ok=false when nothing usable is stored
	Load() (State, bool)
	Save(state State) error
}

// snapshot is the persisted subset of State
type snapshot struct {
	CurrentStep  int                 `json:"currentStep"`
	Items        map[string]int      `json:"items"`
	AccessIssues []string            `json:"accessIssues"`
	Address      models.Address      `json:"address"`
	Contact      models.Contact      `json:"contact"`
	Distance     models.DistanceInfo `json:"distance"`
	Consent      bool                `json:"gdprConsent"`
	Submitted    bool                `json:"submitted"`
	PriceResult  *models.PriceResult `json:"priceResult"`
}

// EncodeSnapshot serializes the non-volatile part of state
func EncodeSnapshot(state State) ([]byte, error) {
	data, err := json.Marshal(snapshot{
		CurrentStep:  state.CurrentStep,
		Items:        state.Items,
		AccessIssues: state.AccessIssues,
		Address:      state.Address,
		Contact:      state.Contact,
		Distance:     state.Distance,
		Consent:      state.Consent,
		Submitted:    state.Submitted,
		PriceResult:  state.PriceResult,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode wizard snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a state from a snapshot. The blob must pass the shape check
// as a whole; a blob that fails it is rejected rather than partially applied.
// Volatile fields always come back at their initial values.
func DecodeSnapshot(data []byte) (State, error) {
	if err := validation.CheckSnapshotShape(data, LastStep); err != nil {
		return InitialState(), err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return InitialState(), fmt.Errorf("failed to decode wizard snapshot: %w", err)
	}

	state := InitialState()
	state.CurrentStep = snap.CurrentStep
	state.Distance = snap.Distance
	state.Consent = snap.Consent
	state.Submitted = snap.Submitted
	state.PriceResult = snap.PriceResult

	// Replay through the reducer so stored fields obey the same rules as live edits
	for field, value := range map[AddressField]string{
		AddressLine1:    snap.Address.Line1,
		AddressCity:     snap.Address.City,
		AddressPostcode: snap.Address.Postcode,
	} {
		state = Reduce(state, SetAddressField{Field: field, Value: value})
	}
	for field, value := range map[ContactField]string{
		ContactFirstName: snap.Contact.FirstName,
		ContactLastName:  snap.Contact.LastName,
		ContactEmail:     snap.Contact.Email,
		ContactPhone:     snap.Contact.Phone,
		ContactNotes:     snap.Contact.Notes,
	} {
		state = Reduce(state, SetContactField{Field: field, Value: value})
	}
	for code, qty := range snap.Items {
		state = Reduce(state, SetItemQuantity{Code: code, Quantity: qty})
	}
	for _, code := range snap.AccessIssues {
		if !state.HasAccessIssue(code) {
			state = Reduce(state, ToggleAccessIssue{Code: code})
		}
	}
	return state, nil
}

// MemoryRepository keeps the snapshot in memory
type MemoryRepository struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryRepository creates an empty MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load decodes the stored snapshot
func (r *MemoryRepository) Load() (State, bool) {
	r.mu.Lock()
	data := r.data
	r.mu.Unlock()

	if data == nil {
		return InitialState(), false
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		log.Printf("⚠️  Wizard: Discarding stored state: %v", err)
		return InitialState(), false
	}
	return state, true
}

// Save stores the snapshot of state
func (r *MemoryRepository) Save(state State) error {
	data, err := EncodeSnapshot(state)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}

// Raw returns the stored blob
func (r *MemoryRepository) Raw() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.data...)
}

// SetRaw replaces the stored blob
func (r *MemoryRepository) SetRaw(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
}

// FileRepository keeps the snapshot as a JSON file named after SessionKey inside a session directory
type FileRepository struct {
	path string
}

// NewFileRepository creates a FileRepository rooted at dir
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{path: filepath.Join(dir, SessionKey+".json")}
}

// Path returns the snapshot file path
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and decodes the snapshot file
func (r *FileRepository) Load() (State, bool) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️  Wizard: Failed to read stored state: %v", err)
		}
		return InitialState(), false
	}

	state, err := DecodeSnapshot(data)
	if err != nil {
		log.Printf("⚠️  Wizard: Discarding stored state from %s: %v", r.path, err)
		return InitialState(), false
	}
	return state, true
}

// Save writes the snapshot file, replacing it atomically
func (r *FileRepository) Save(state State) error {
	data, err := EncodeSnapshot(state)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write wizard state: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace wizard state: %w", err)
	}
	return nil
}
