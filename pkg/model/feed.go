package model

import (
	"sort"
	"time"
)

// Kind tells which media family a record belongs to
type Kind string

const (
	KindVideo   = Kind("video")
	KindPodcast = Kind("podcast")
)

// FeedRecord is a single media announcement (a video or a podcast episode)
type FeedRecord struct {
	// ID is the enclosure URL for podcasts and the video id for videos
	ID           string    `json:"id" msgpack:"id"`
	Title        string    `json:"title" msgpack:"title"`
	Description  string    `json:"description" msgpack:"description"`
	PublishedAt  time.Time `json:"published_at" msgpack:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" msgpack:"thumbnail_url"`
	ContentURL   string    `json:"content_url" msgpack:"content_url"`
	Kind         Kind      `json:"kind" msgpack:"kind"`
	SourceName   string    `json:"source_name" msgpack:"source_name"`
	// ExternalLink is the episode web page, podcasts only
	ExternalLink string `json:"external_link,omitempty" msgpack:"external_link"`
}

// sort.Interface implementation
type timeSlice []FeedRecord

func (p timeSlice) Len() int {
	return len(p)
}

// In descending order
func (p timeSlice) Less(i, j int) bool {
	return p[i].PublishedAt.After(p[j].PublishedAt)
}

func (p timeSlice) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

// SortNewestFirst orders records by publish time, newest first.
// The relative order of records with equal timestamps is unspecified.
func SortNewestFirst(items []FeedRecord) {
	sort.Sort(timeSlice(items))
}

// IsSortedNewestFirst reports whether items are in descending publish order.
func IsSortedNewestFirst(items []FeedRecord) bool {
	return sort.IsSorted(timeSlice(items))
}
