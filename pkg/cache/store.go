package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/db"
	"github.com/gurinder1988/footyfeed/pkg/model"
)

const snapshotKey = "snapshot/feed_items"

// Snapshot is the last successfully merged list, replaced as a whole on every save.
type Snapshot struct {
	Items   []model.FeedRecord `msgpack:"items"`
	SavedAt time.Time          `msgpack:"saved_at"`
}

// Store keeps a single feed snapshot with a freshness window.
type Store struct {
	storage db.Storage
	ttl     time.Duration
	now     func() time.Time
}

func NewStore(storage db.Storage, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = model.DefaultCacheTTL
	}

	return &Store{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Save replaces the stored snapshot with items, stamped with the current time.
func (s *Store) Save(ctx context.Context, items []model.FeedRecord) error {
	snapshot := Snapshot{
		Items:   items,
		SavedAt: s.now().UTC(),
	}

	data, err := compressObj(&snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	if err := s.storage.Set(ctx, snapshotKey, data); err != nil {
		return errors.Wrap(err, "failed to save snapshot")
	}

	log.Debugf("saved snapshot with %d item(s)", len(items))
	return nil
}

// Load returns the snapshot items if one exists and is younger than the TTL.
// Read and decode failures are logged and reported as a miss.
func (s *Store) Load(ctx context.Context) ([]model.FeedRecord, bool) {
	data, err := s.storage.Get(ctx, snapshotKey)
	if err == model.ErrNotFound {
		return nil, false
	} else if err != nil {
		log.WithError(err).Warn("failed to read snapshot")
		return nil, false
	}

	var snapshot Snapshot
	if err := decompressObj(data, &snapshot); err != nil {
		log.WithError(err).Warn("failed to decode snapshot, ignoring")
		return nil, false
	}

	age := s.now().Sub(snapshot.SavedAt)
	if age >= s.ttl {
		log.Debugf("snapshot is stale (%s old)", age.Round(time.Second))
		return nil, false
	}

	if snapshot.Items == nil {
		snapshot.Items = []model.FeedRecord{}
	}

	for i := range snapshot.Items {
		snapshot.Items[i].PublishedAt = snapshot.Items[i].PublishedAt.UTC()
	}

	return snapshot.Items, true
}

func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Delete(ctx, snapshotKey)
}
