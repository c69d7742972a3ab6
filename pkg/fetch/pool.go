package fetch

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/gurinder1988/footyfeed/pkg/model"
	"github.com/gurinder1988/footyfeed/pkg/stats"
)

// Worker fetches a single source.
type Worker interface {
	Fetch(ctx context.Context, src Source) ([]model.FeedRecord, error)
}

// BatchResult is the outcome of fetching a list of sources.
type BatchResult struct {
	// Items of all successful sources, newest first
	Items []model.FeedRecord
	// Errors has one message per failed source
	Errors       []string
	AnySucceeded bool

	errs []error
}

// Err returns the source failures as a single error, or nil.
func (r BatchResult) Err() error {
	var result *multierror.Error
	for _, err := range r.errs {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Pool runs a worker over many sources with a bounded number of fetches in flight.
type Pool struct {
	worker      Worker
	concurrency int
}

func NewPool(worker Worker, concurrency int) *Pool {
	if concurrency <= 0 {
		concurrency = model.DefaultConcurrency
	}

	return &Pool{worker: worker, concurrency: concurrency}
}

type outcome struct {
	items []model.FeedRecord
	err   error
}

// FetchAll fetches every source once. A failing source never affects its siblings.
func (p *Pool) FetchAll(ctx context.Context, sources []Source) BatchResult {
	var (
		sem      = semaphore.NewWeighted(int64(p.concurrency))
		outcomes = make([]outcome, len(sources))
		wg       sync.WaitGroup
	)

	for i, src := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			outcomes[i].err = &FetchError{URL: src.URL, Err: err}
			continue
		}

		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			defer sem.Release(1)

			items, err := p.worker.Fetch(ctx, src)
			if err != nil {
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					err = &FetchError{URL: src.URL, Err: err}
				}
				items = nil
			}

			outcomes[i] = outcome{items: items, err: err}
		}(i, src)
	}

	wg.Wait()

	var result BatchResult
	for i, out := range outcomes {
		if out.err != nil {
			log.WithError(out.err).WithField("source", sources[i].String()).Warn("source failed")
			result.errs = append(result.errs, out.err)
			result.Errors = append(result.Errors, out.err.Error())
			continue
		}

		result.AnySucceeded = true
	}

	result.Items = lo.Flatten(lo.Map(outcomes, func(out outcome, _ int) []model.FeedRecord {
		return out.items
	}))
	model.SortNewestFirst(result.Items)

	stats.ObserveBatch(len(sources), len(result.errs))

	return result
}
