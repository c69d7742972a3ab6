package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gurinder1988/footyfeed/pkg/fetch"
)

// check fetches every source with a lenient general purpose parser and
// reports the ones that can't be reached or parsed.
func check(ctx context.Context, cfg fetch.Config, list []fetch.Source) error {
	var (
		mu     sync.Mutex
		result *multierror.Error
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Concurrency)

	client := &http.Client{Timeout: cfg.Timeout}

	for _, src := range list {
		src := src
		group.Go(func() error {
			parser := gofeed.NewParser()
			parser.UserAgent = cfg.UserAgent
			parser.Client = client

			parsed, err := parser.ParseURLWithContext(fetch.NormalizeURL(src.URL), ctx)
			if err != nil {
				log.WithError(err).Warnf("x %s", src)

				mu.Lock()
				result = multierror.Append(result, errors.Wrapf(err, "%s", src.URL))
				mu.Unlock()
				return nil
			}

			log.WithFields(log.Fields{
				"title": parsed.Title,
				"items": len(parsed.Items),
			}).Infof("ok %s", src)
			return nil
		})
	}

	_ = group.Wait()

	return result.ErrorOrNil()
}
