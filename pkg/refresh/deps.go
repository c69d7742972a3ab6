//go:generate mockgen -source=deps.go -destination=deps_mock_test.go -package=refresh

package refresh

import (
	"context"

	"github.com/gurinder1988/footyfeed/pkg/fetch"
	"github.com/gurinder1988/footyfeed/pkg/model"
)

type batchFetcher interface {
	FetchAll(ctx context.Context, sources []fetch.Source) fetch.BatchResult
}

type snapshotStore interface {
	Save(ctx context.Context, items []model.FeedRecord) error
	Load(ctx context.Context) ([]model.FeedRecord, bool)
}

type preferenceStore interface {
	Preference(ctx context.Context) (string, error)
	SetPreference(ctx context.Context, entity string) error
}

type sourceRegistry interface {
	General() []fetch.Source
	Preferred(entity string) ([]fetch.Source, bool)
	Has(entity string) bool
}
