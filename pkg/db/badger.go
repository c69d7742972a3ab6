package db

import (
	"context"
	"encoding/json"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/model"
)

type Badger struct {
	db *badger.DB
}

var _ Storage = (*Badger)(nil)

func NewBadger(config *Config) (*Badger, error) {
	var (
		dir = config.Dir
	)

	log.Infof("opening database %q", dir)

	// Make sure database directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not mkdir database dir")
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(log.StandardLogger()).
		WithTruncate(true)

	if config.Badger != nil {
		opts.Truncate = config.Badger.Truncate
		if config.Badger.FileIO {
			opts.ValueLogLoadingMode = options.FileIO
		}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	storage := &Badger{db: db}

	if err := db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(versionKey))
		if err == nil {
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		data, err := json.Marshal(CurrentVersion)
		if err != nil {
			return err
		}

		return txn.Set([]byte(versionKey), data)
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to read database version")
	}

	return storage, nil
}

func (b *Badger) Close() error {
	log.Debug("closing database")
	return b.db.Close()
}

func (b *Badger) Version() (int, error) {
	var (
		version = -1
	)

	err := b.db.View(func(txn *badger.Txn) error {
		data, err := b.get(txn, []byte(versionKey))
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &version)
	})

	return version, err
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		data, err = b.get(txn, []byte(fullKey(key)))
		return err
	})

	return data, err
}

func (b *Badger) Set(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(fullKey(key)), value); err != nil {
			return errors.Wrapf(err, "failed to set key %q", key)
		}
		return nil
	})
}

func (b *Badger) Delete(_ context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(fullKey(key))); err != nil {
			return errors.Wrapf(err, "failed to delete key %q", key)
		}
		return nil
	})
}

func (b *Badger) get(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, model.ErrNotFound
		}

		return nil, err
	}

	return item.ValueCopy(nil)
}
