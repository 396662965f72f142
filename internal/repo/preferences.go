package repo

import (
	"context"
	"sync"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// PreferenceRepo loads and saves the single session's preferences.
// The service layer depends on this interface, not a concrete backend,
// which allows the service to be unit-tested with a mock.
type PreferenceRepo interface {
	// Load returns the stored preferences. An empty store yields defaults;
	// corrupt values fall back to defaults key by key.
	Load(ctx context.Context) (domain.Preferences, error)

	// Save replaces the stored snapshot with p.
	Save(ctx context.Context, p domain.Preferences) error
}

// memoryPreferenceRepo keeps the snapshot in process memory. Used when no
// database is configured and in tests.
type memoryPreferenceRepo struct {
	mu sync.Mutex
	kv map[string]string
}

// NewMemoryPreferenceRepo constructs an empty in-memory PreferenceRepo.
func NewMemoryPreferenceRepo() PreferenceRepo {
	return &memoryPreferenceRepo{kv: map[string]string{}}
}

func (r *memoryPreferenceRepo) Load(_ context.Context) (domain.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Decode(r.kv), nil
}

func (r *memoryPreferenceRepo) Save(_ context.Context, p domain.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kv = Encode(p)
	return nil
}
