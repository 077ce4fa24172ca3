package services

import (
	"net/url"
	"strings"

	"remontzbt.dev/internal/models"
)

// Gallery tracks which image of a project is highlighted on the detail page
type Gallery struct {
	images   []models.MediaItem
	videos   []models.VideoItem
	selected int
}

// Thumbnail is one selectable entry of the gallery strip
type Thumbnail struct {
	Index  int
	Image  models.MediaItem
	Active bool
}

// VideoEmbed describes how a video should be rendered
type VideoEmbed struct {
	Video     models.VideoItem
	Index     int
	EmbedURL  string
	IsHosted  bool
	YouTubeID string
}

// Number is the 1-based position used in captions
func (v VideoEmbed) Number() int {
	return v.Index + 1
}

// NewGallery starts a gallery at the first image
func NewGallery(p *models.Project) *Gallery {
	return &Gallery{images: p.Images, videos: p.Videos}
}

// Select highlights the image at index k. Out-of-range indices are rejected
// and leave the selection unchanged.
func (g *Gallery) Select(k int) bool {
	if k < 0 || k >= len(g.images) {
		return false
	}
	g.selected = k
	return true
}

// Selected returns the highlighted index
func (g *Gallery) Selected() int {
	return g.selected
}

// Current returns the highlighted image, or false when the project has none
func (g *Gallery) Current() (models.MediaItem, bool) {
	if len(g.images) == 0 {
		return models.MediaItem{}, false
	}
	return g.images[g.selected], true
}

// Thumbnails lists every valid index
func (g *Gallery) Thumbnails() []Thumbnail {
	out := make([]Thumbnail, len(g.images))
	for i, img := range g.images {
		out[i] = Thumbnail{Index: i, Image: img, Active: i == g.selected}
	}
	return out
}

// Videos returns render instructions for every video, independent of the
// selected image.
func (g *Gallery) Videos() []VideoEmbed {
	out := make([]VideoEmbed, len(g.videos))
	for i, v := range g.videos {
		out[i] = Embed(v)
		out[i].Index = i
	}
	return out
}

// Embed decides whether a video is played from an external host or as a
// direct media file.
func Embed(v models.VideoItem) VideoEmbed {
	id := YouTubeID(v.URL)
	if id == "" {
		return VideoEmbed{Video: v}
	}
	return VideoEmbed{
		Video:     v,
		IsHosted:  true,
		YouTubeID: id,
		EmbedURL:  "https://www.youtube.com/embed/" + id,
	}
}

// YouTubeID extracts the video id from a YouTube link. It returns "" for any
// other host.
func YouTubeID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtu.be":
		return firstSegment(u.Path)
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return firstSegment(strings.TrimPrefix(u.Path, prefix))
			}
		}
	}
	return ""
}

func firstSegment(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
