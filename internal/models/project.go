package models

import (
	"encoding/json"
	"strings"
)

// MediaRole tags an image as taken before or after the renovation
type MediaRole string

const (
	MediaBefore MediaRole = "before"
	MediaAfter  MediaRole = "after"
	MediaOther  MediaRole = "other"
)

// ParseMediaRole maps unknown or empty roles to MediaOther
func ParseMediaRole(s string) MediaRole {
	switch MediaRole(strings.ToLower(strings.TrimSpace(s))) {
	case MediaBefore:
		return MediaBefore
	case MediaAfter:
		return MediaAfter
	default:
		return MediaOther
	}
}

// MediaItem is one image attached to a project
type MediaItem struct {
	Type MediaRole `json:"type"`
	URL  string    `json:"url"`
	Alt  string    `json:"alt"`
}

// UnmarshalJSON normalizes the role tag.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type string `json:"type"`
		URL  string `json:"url"`
		Alt  string `json:"alt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Type = ParseMediaRole(raw.Type)
	m.URL = raw.URL
	m.Alt = raw.Alt
	return nil
}

// VideoItem is one video attached to a project. URL is either a direct
// media file or a link to an external host.
type VideoItem struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Project represents one completed renovation job
type Project struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Category        string      `json:"category"`
	Description     string      `json:"description"`
	FullDescription string      `json:"fullDescription,omitempty"`
	Images          []MediaItem `json:"images"`
	Videos          []VideoItem `json:"videos"`
	Cost            string      `json:"cost"`
	Duration        string      `json:"duration"`
	Date            string      `json:"date"`
	Works           []string    `json:"works,omitempty"`
}

// UnmarshalJSON accepts the legacy single "videoUrl" field and folds it into
// Videos so every consumer sees one shape.
func (p *Project) UnmarshalJSON(data []byte) error {
	type canonical Project
	var raw struct {
		canonical
		VideoURL *string `json:"videoUrl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Project(raw.canonical)

	if raw.VideoURL != nil {
		if url := strings.TrimSpace(*raw.VideoURL); url != "" && !p.hasVideo(url) {
			p.Videos = append(p.Videos, VideoItem{URL: url})
		}
	}
	if p.Images == nil {
		p.Images = []MediaItem{}
	}
	if p.Videos == nil {
		p.Videos = []VideoItem{}
	}
	return nil
}

func (p *Project) hasVideo(url string) bool {
	for _, v := range p.Videos {
		if v.URL == url {
			return true
		}
	}
	return false
}

// PrimaryImage returns the first image, used on listing cards
func (p *Project) PrimaryImage() (MediaItem, bool) {
	if len(p.Images) == 0 {
		return MediaItem{}, false
	}
	return p.Images[0], true
}

// CoverImage returns the last image, which by convention is the finished result
func (p *Project) CoverImage() (MediaItem, bool) {
	if len(p.Images) == 0 {
		return MediaItem{}, false
	}
	return p.Images[len(p.Images)-1], true
}

// Summary returns the long description when present, the short one otherwise
func (p *Project) Summary() string {
	if strings.TrimSpace(p.FullDescription) != "" {
		return p.FullDescription
	}
	return p.Description
}
