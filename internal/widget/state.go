// Package widget holds the timeline refresh driver and the typed view of the
// shared store the host app and the widget process exchange state through.
package widget

import (
	"fmt"
	"time"

	"github.com/doodlemate-companion/internal/domain"
	"github.com/doodlemate-companion/internal/imaging"
	"github.com/doodlemate-companion/internal/sharedstore"
)

const (
	keySession      = "widget_session_data"
	keyLatestDoodle = "widget_latest_doodle"
)

// State is the typed accessor over the shared store. The host app writes the
// session on login/refresh; the widget reads it and opportunistically fills
// the doodle cache after a successful fetch. Both writers would write the
// same logically-latest value, so last-writer-wins is benign.
type State struct {
	store *sharedstore.Store
	now   func() time.Time
}

func NewState(store *sharedstore.Store) *State {
	return &State{store: store, now: time.Now}
}

// Session returns the cached session, treating an expired record exactly like
// an absent one (domain.ErrNotFound).
func (s *State) Session() (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	if err := s.store.Get(keySession, &rec); err != nil {
		return nil, err
	}
	if rec.Expired(s.now()) {
		return nil, fmt.Errorf("session expired: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

// SaveSession persists the session record. Host-app side of the channel.
func (s *State) SaveSession(rec domain.SessionRecord) error {
	return s.store.Put(keySession, rec)
}

// ClearSession drops the cached session, e.g. on logout.
func (s *State) ClearSession() error {
	return s.store.Clear(keySession)
}

// LatestDoodle returns the cached doodle record, if any.
func (s *State) LatestDoodle() (*domain.DoodleCacheRecord, error) {
	var rec domain.DoodleCacheRecord
	if err := s.store.Get(keyLatestDoodle, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveDoodle normalizes the image to the display budget and overwrites the
// cache record wholesale. Normalization failure aborts the write; the cache
// never holds an unnormalized image.
func (s *State) SaveDoodle(image []byte, partnerName string) (*domain.DoodleCacheRecord, error) {
	normalized, err := imaging.Normalize(image)
	if err != nil {
		return nil, fmt.Errorf("normalize doodle: %w", err)
	}
	rec := domain.DoodleCacheRecord{
		ImageData:   normalized,
		PartnerName: partnerName,
		Timestamp:   s.now(),
	}
	if err := s.store.Put(keyLatestDoodle, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClearDoodle drops the cached doodle.
func (s *State) ClearDoodle() error {
	return s.store.Clear(keyLatestDoodle)
}
