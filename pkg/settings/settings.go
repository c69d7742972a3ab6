package settings

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gurinder1988/footyfeed/pkg/db"
	"github.com/gurinder1988/footyfeed/pkg/model"
)

const preferenceKey = "settings/preference"

// Store persists the selected entity between restarts.
type Store struct {
	storage db.Storage
}

func NewStore(storage db.Storage) *Store {
	return &Store{storage: storage}
}

// Preference returns the selected entity, or an empty string when none is set.
func (s *Store) Preference(ctx context.Context) (string, error) {
	data, err := s.storage.Get(ctx, preferenceKey)
	if err == model.ErrNotFound {
		return "", nil
	} else if err != nil {
		return "", errors.Wrap(err, "failed to read preference")
	}

	return string(data), nil
}

// SetPreference stores entity. An empty entity clears the preference.
func (s *Store) SetPreference(ctx context.Context, entity string) error {
	if entity == "" {
		if err := s.storage.Delete(ctx, preferenceKey); err != nil {
			return errors.Wrap(err, "failed to clear preference")
		}
		return nil
	}

	if err := s.storage.Set(ctx, preferenceKey, []byte(entity)); err != nil {
		return errors.Wrap(err, "failed to save preference")
	}

	return nil
}
