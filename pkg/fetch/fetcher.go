package fetch

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/feed"
	"github.com/gurinder1988/footyfeed/pkg/model"
	"github.com/gurinder1988/footyfeed/pkg/stats"
)

const acceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

type Config struct {
	// Concurrency is the maximum number of sources fetched at once
	Concurrency int `toml:"concurrency"`
	// ConnectTimeout bounds connection setup and the wait for response headers
	ConnectTimeout time.Duration `toml:"connect_timeout"`
	// Timeout bounds the whole request including reading the body
	Timeout   time.Duration `toml:"timeout"`
	UserAgent string        `toml:"user_agent"`
}

// Fetcher downloads a single source and converts its items to records.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(cfg Config) *Fetcher {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = model.DefaultConnectTimeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = model.DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = model.DefaultUserAgent
	}

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ConnectTimeout,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
	}
}

// Fetch downloads src and returns its records. Any failure is returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]model.FeedRecord, error) {
	started := time.Now()

	items, err := f.fetch(ctx, src)
	stats.ObserveFetch(string(src.Grammar), err, time.Since(started))

	if err != nil {
		return nil, &FetchError{URL: src.URL, Err: err}
	}

	log.WithFields(log.Fields{
		"source":  src.String(),
		"grammar": src.Grammar,
		"items":   len(items),
	}).Debug("fetched source")

	return items, nil
}

func (f *Fetcher) fetch(ctx context.Context, src Source) ([]model.FeedRecord, error) {
	parser, err := feed.New(src.Grammar)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeURL(src.URL), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	parsed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	return convert(src, parsed), nil
}
