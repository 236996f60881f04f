// Package profile owns the single user profile and its BMI history: creating,
// updating and deleting it, and the derived BMI queries over it.
package profile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/metrics"
)

// Store is the profile service. Build one with NewStore and share it.
//
// Operations are not serialised against each other. The mutex only guards
// the in-memory pointer and is never held across a kv call, so overlapping
// mutations resolve last-writer-wins. Subscribers are notified in the same
// order the pointer is replaced, so the last notification always matches
// Profile().
type Store struct {
	kv    kv.Store
	log   *logger.Logger
	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	profile *UserProfile

	inflight atomic.Int32

	// setMu orders pointer replacement together with its notifications.
	setMu sync.Mutex

	subsMu  sync.Mutex
	subs    map[int]func(*UserProfile)
	nextSub int
}

type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the identifier source used by SaveUser.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func NewStore(store kv.Store, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
		subs:  make(map[int]func(*UserProfile)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* ─── Lifecycle ──────────────────────────────────────────────────────── */

// LoadProfile reads the persisted profile into memory. A missing key leaves
// the store without a profile; read or decode failures are logged and the
// in-memory state is kept.
func (s *Store) LoadProfile(ctx context.Context) {
	defer s.busy()()

	var p UserProfile
	found, err := kv.GetJSON(ctx, s.kv, kv.KeyUserProfile, &p)
	if err != nil {
		s.log.Error("failed to load profile", "error", err)
		return
	}
	if !found {
		s.log.Debug("no stored profile")
		return
	}
	s.set(&p)
}

// SaveUser creates the profile from a first-time completion. Invalid input
// returns a *ValidationError. A persistence failure is logged and leaves the
// in-memory state as it was; it is not returned.
func (s *Store) SaveUser(ctx context.Context, in UserProfileInput) error {
	defer s.busy()()

	if err := validateStruct(in); err != nil {
		return err
	}
	if err := checkBMI(in.Weight, in.Height); err != nil {
		return err
	}

	now := s.now()
	id := in.ID
	if id == "" {
		id = s.newID()
	}
	p := &UserProfile{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Age:         in.Age,
		Nationality: in.Nationality,
		Weight:      in.Weight,
		Height:      in.Height,
		Address:     in.Address,
		Gender:      in.Gender,
		BMIHistory:  []BMIRecord{newBMIRecord(in.Weight, in.Height, now)},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := kv.PutJSON(ctx, s.kv, kv.KeyUserProfile, p); err != nil {
		s.log.Error("failed to save profile", "error", err, "profile_id", id)
		return nil
	}
	s.set(p)
	s.log.Info("profile created", "profile_id", id)
	return nil
}

// UpdateProfile merges upd into the current profile. Without a profile it
// does nothing. Non-positive weight, height or age, or a merged
// weight/height pair with no finite BMI, returns a *ValidationError.
func (s *Store) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	defer s.busy()()

	if err := validateStruct(upd); err != nil {
		return err
	}

	current := s.Profile()
	if current == nil {
		s.log.Debug("update ignored: no profile")
		return nil
	}

	next, appended := Reconcile(*current, upd, s.now())
	if len(appended) > 0 {
		if err := checkBMI(next.Weight, next.Height); err != nil {
			return err
		}
	}
	if err := kv.PutJSON(ctx, s.kv, kv.KeyUserProfile, next); err != nil {
		s.log.Error("failed to update profile", "error", err, "profile_id", next.ID)
		return nil
	}
	s.set(&next)
	if len(appended) > 0 {
		s.log.Info("bmi recorded", "profile_id", next.ID, "bmi", appended[0].BMI)
	}
	return nil
}

// DeleteProfile removes the persisted profile and clears memory. Deleting
// when nothing is stored succeeds.
func (s *Store) DeleteProfile(ctx context.Context) {
	defer s.busy()()

	if err := s.kv.Remove(ctx, kv.KeyUserProfile); err != nil {
		s.log.Error("failed to delete profile", "error", err)
		return
	}
	s.set(nil)
	s.log.Info("profile deleted")
}

/* ─── Queries ────────────────────────────────────────────────────────── */

// Profile returns a copy of the current profile, or nil.
func (s *Store) Profile() *UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.clone()
}

// Loading reports whether a load, save, update or delete is in flight.
func (s *Store) Loading() bool {
	return s.inflight.Load() > 0
}

func (s *Store) busy() (done func()) {
	s.inflight.Add(1)
	return func() { s.inflight.Add(-1) }
}

// CurrentBMI is recomputed from the profile's current weight and height, not
// read from history.
func (s *Store) CurrentBMI() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return 0, false
	}
	return metrics.CalculateBMI(s.profile.Weight, s.profile.Height), true
}

// BMIHistory returns a copy of the history; empty when there is no profile.
func (s *Store) BMIHistory() []BMIRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return []BMIRecord{}
	}
	return append([]BMIRecord{}, s.profile.BMIHistory...)
}

func (s *Store) BMITrend() Trend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return TrendUnavailable
	}
	return trendOf(s.profile.BMIHistory)
}

/* ─── Subscriptions ──────────────────────────────────────────────────── */

// Subscribe registers fn to receive a copy of the profile (nil after delete)
// after every in-memory change. fn may read the store but must not mutate
// it. The returned func unregisters it.
func (s *Store) Subscribe(fn func(*UserProfile)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) set(p *UserProfile) {
	s.setMu.Lock()
	defer s.setMu.Unlock()

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()

	s.subsMu.Lock()
	fns := make([]func(*UserProfile), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(p.clone())
	}
}
