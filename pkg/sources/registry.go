package sources

import (
	"net/url"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/gurinder1988/footyfeed/pkg/feed"
	"github.com/gurinder1988/footyfeed/pkg/fetch"
)

const channelFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id="

// Registry resolves configured feed lists into fetchable sources.
type Registry struct {
	general  []fetch.Source
	entities map[string][]fetch.Source
}

func NewRegistry(cfg Config) *Registry {
	r := &Registry{
		general:  expand("general", cfg.General),
		entities: make(map[string][]fetch.Source, len(cfg.Entities)),
	}

	for name, list := range cfg.Entities {
		r.entities[name] = expand(name, list)
	}

	return r
}

// General returns sources fetched on every refresh.
func (r *Registry) General() []fetch.Source {
	return append([]fetch.Source(nil), r.general...)
}

// Preferred returns the sources of entity, video channels first.
func (r *Registry) Preferred(entity string) ([]fetch.Source, bool) {
	list, ok := r.entities[entity]
	if !ok {
		return nil, false
	}
	return append([]fetch.Source(nil), list...), true
}

func (r *Registry) Has(entity string) bool {
	_, ok := r.entities[entity]
	return ok
}

// Entities returns configured entity names in sorted order.
func (r *Registry) Entities() []string {
	names := lo.Keys(r.entities)
	sort.Strings(names)
	return names
}

// All returns every configured source once, general sources first.
func (r *Registry) All() []fetch.Source {
	all := r.General()
	for _, name := range r.Entities() {
		all = append(all, r.entities[name]...)
	}

	return lo.UniqBy(all, func(src fetch.Source) string {
		return src.URL
	})
}

// ChannelURL converts a YouTube channel id to its Atom feed URL. URLs are returned as is.
func ChannelURL(channel string) string {
	if strings.Contains(channel, "://") {
		return channel
	}
	return channelFeedURL + url.QueryEscape(channel)
}

func expand(label string, list List) []fetch.Source {
	videos := lo.FilterMap(list.VideoChannels, func(channel string, _ int) (fetch.Source, bool) {
		channel = strings.TrimSpace(channel)
		return fetch.Source{
			URL:     ChannelURL(channel),
			Grammar: feed.GrammarVideo,
			Name:    label + "/" + channel,
		}, channel != ""
	})

	podcasts := lo.FilterMap(list.PodcastFeeds, func(feedURL string, _ int) (fetch.Source, bool) {
		feedURL = strings.TrimSpace(feedURL)
		return fetch.Source{
			URL:     feedURL,
			Grammar: feed.GrammarPodcast,
			Name:    label + "/" + feedURL,
		}, feedURL != ""
	})

	return append(videos, podcasts...)
}
