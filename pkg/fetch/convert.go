package fetch

import (
	"net/url"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/feed"
	"github.com/gurinder1988/footyfeed/pkg/model"
)

func convert(src Source, parsed *feed.Feed) []model.FeedRecord {
	kind := model.KindPodcast
	if src.Grammar == feed.GrammarVideo {
		kind = model.KindVideo
	}

	return lo.FilterMap(parsed.Items, func(item feed.Item, _ int) (model.FeedRecord, bool) {
		if !isAbsoluteURL(item.ContentURL) {
			log.WithField("source", src.String()).Debugf("skipping item %q with invalid content url %q", item.Title, item.ContentURL)
			return model.FeedRecord{}, false
		}

		record := model.FeedRecord{
			ID:          item.ID,
			Title:       feed.Sanitize(item.Title),
			Description: feed.Sanitize(item.Description),
			PublishedAt: item.Published.UTC(),
			ContentURL:  item.ContentURL,
			Kind:        kind,
			SourceName:  feed.Sanitize(item.Author),
		}

		if record.Title == "" {
			return model.FeedRecord{}, false
		}

		if record.SourceName == "" {
			record.SourceName = src.Name
		}

		if isAbsoluteURL(item.ThumbnailURL) {
			record.ThumbnailURL = item.ThumbnailURL
		}

		if kind == model.KindPodcast && isAbsoluteURL(item.Link) {
			record.ExternalLink = item.Link
		}

		return record, true
	})
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
