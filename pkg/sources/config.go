package sources

// List is a set of feeds declared in one config section.
type List struct {
	// VideoChannels holds YouTube channel ids or full channel feed URLs
	VideoChannels []string `toml:"video_channels"`
	PodcastFeeds  []string `toml:"podcast_feeds"`
}

type Config struct {
	General  List            `toml:"general"`
	Entities map[string]List `toml:"entities"`
}
