package widget

import (
	"context"
	"errors"
	"time"

	"github.com/doodlemate-companion/internal/domain"
	"github.com/doodlemate-companion/internal/infrastructure/backend"
	"go.uber.org/zap"
)

// RefreshInterval is the sole re-scheduling policy: a fixed floor on how soon
// the platform should invoke the driver again, regardless of outcome.
const RefreshInterval = 15 * time.Minute

// fallbackPartnerName labels the empty-state placeholder.
const fallbackPartnerName = "Partner"

type doodleFetcher interface {
	LatestDoodle(ctx context.Context, session domain.SessionRecord) (*backend.Doodle, error)
}

// Driver decides what the widget shows on each platform-triggered callback.
// Failures never propagate to the platform; every path emits an entry.
type Driver struct {
	state   *State
	fetcher doodleFetcher
	log     *zap.Logger
	now     func() time.Time
}

func NewDriver(state *State, fetcher doodleFetcher, log *zap.Logger) *Driver {
	return &Driver{state: state, fetcher: fetcher, log: log, now: time.Now}
}

// Placeholder is the fast path shown before real data is available.
func (d *Driver) Placeholder() domain.TimelineEntry {
	return d.emptyEntry()
}

// Snapshot is the preview path. It is synchronous and never touches the
// network.
func (d *Driver) Snapshot() domain.TimelineEntry {
	return d.emptyEntry()
}

// Timeline is the main periodic path: one entry plus the earliest time the
// platform should call again.
func (d *Driver) Timeline(ctx context.Context) (domain.TimelineEntry, time.Time) {
	next := d.now().Add(RefreshInterval)

	// Cache-first: a cached doodle short-circuits the network entirely.
	if rec, err := d.state.LatestDoodle(); err == nil {
		return d.doodleEntry(rec), next
	}

	session, err := d.state.Session()
	if err != nil {
		return d.emptyEntry(), next
	}

	doodle, err := d.fetcher.LatestDoodle(ctx, *session)
	if errors.Is(err, domain.ErrNoDoodle) {
		return d.emptyEntry(), next
	}
	if err != nil {
		d.log.Warn("doodle fetch failed", zap.Error(err))
		return d.emptyEntry(), next
	}

	rec, err := d.state.SaveDoodle(doodle.Image, doodle.SenderName)
	if err != nil {
		d.log.Warn("doodle cache write failed", zap.Error(err))
		return d.emptyEntry(), next
	}
	return d.doodleEntry(rec), next
}

func (d *Driver) emptyEntry() domain.TimelineEntry {
	return domain.TimelineEntry{PartnerName: fallbackPartnerName, Date: d.now()}
}

func (d *Driver) doodleEntry(rec *domain.DoodleCacheRecord) domain.TimelineEntry {
	return domain.TimelineEntry{
		DoodleImageData: rec.ImageData,
		PartnerName:     rec.PartnerName,
		Date:            d.now(),
	}
}
