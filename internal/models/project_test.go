package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectDecodeLegacyVideoURL(t *testing.T) {
	doc := `{
		"id": 3,
		"title": "Студия 28 м²",
		"category": "Студии",
		"images": [{"type": "before", "url": "/a.jpg", "alt": "a"}],
		"videoUrl": "/media/3.mp4",
		"cost": "450 000 ₽",
		"duration": "6 недель",
		"date": "2024-05-20"
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	require.Equal(t, 3, p.ID)
	require.Equal(t, []VideoItem{{URL: "/media/3.mp4"}}, p.Videos)
	require.Equal(t, MediaBefore, p.Images[0].Type)
}

func TestProjectDecodeMergesVideosWithoutDuplicates(t *testing.T) {
	doc := `{"id":1,"videos":[{"url":"/v.mp4","alt":"тур"}],"videoUrl":"/v.mp4"}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	require.Equal(t, []VideoItem{{URL: "/v.mp4", Alt: "тур"}}, p.Videos)
}

func TestProjectDecodeNullVideoAndMissingImages(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"videoUrl":null}`), &p))
	require.NotNil(t, p.Images)
	require.Empty(t, p.Images)
	require.Empty(t, p.Videos)

	_, ok := p.PrimaryImage()
	require.False(t, ok)
	_, ok = p.CoverImage()
	require.False(t, ok)
}

func TestProjectEncodesCanonicalShape(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"videoUrl":"https://youtu.be/x"}`), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.NotContains(t, string(out), "videoUrl")
	require.Contains(t, string(out), `"videos":[{"url":"https://youtu.be/x","alt":""}]`)
}

func TestParseMediaRole(t *testing.T) {
	require.Equal(t, MediaBefore, ParseMediaRole("before"))
	require.Equal(t, MediaAfter, ParseMediaRole(" AFTER "))
	require.Equal(t, MediaOther, ParseMediaRole("progress"))
	require.Equal(t, MediaOther, ParseMediaRole(""))
}

func TestCoverAndPrimaryImage(t *testing.T) {
	p := Project{Images: []MediaItem{{URL: "/1.jpg"}, {URL: "/2.jpg"}}}
	first, _ := p.PrimaryImage()
	last, _ := p.CoverImage()
	require.Equal(t, "/1.jpg", first.URL)
	require.Equal(t, "/2.jpg", last.URL)
}

func TestSummaryPrefersFullDescription(t *testing.T) {
	p := Project{Description: "коротко"}
	require.Equal(t, "коротко", p.Summary())
	p.FullDescription = "подробно"
	require.Equal(t, "подробно", p.Summary())
}
