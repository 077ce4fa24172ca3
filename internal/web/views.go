package web

import (
	"remontzbt.dev/internal/config"
	"remontzbt.dev/internal/i18n"
	"remontzbt.dev/internal/models"
	"remontzbt.dev/internal/services"
)

// Link is a navigation entry
type Link struct {
	Label  string
	URL    string
	Active bool
}

// Flash is a one-off notification shown at the top of a page
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Layout carries what every page needs
type Layout struct {
	Title string
	L     *i18n.Localizer
	Site  *config.Site
	Nav   []Link
	Langs []Link
	Year  string
	Flash *Flash
}

// Card is a project tile in a grid
type Card struct {
	ID          int
	URL         string
	Title       string
	Category    string
	Description string
	Cost        string
	Duration    string
	ImageURL    string
	ImageAlt    string
}

// HomeView is the data for the home page
type HomeView struct {
	Layout
	Featured  []Card
	LoadError string
}

// PortfolioView is the data for the filterable listing
type PortfolioView struct {
	Layout
	Categories []Link
	Projects   []Card
	LoadError  string
}

// Thumb is one gallery thumbnail
type Thumb struct {
	URL    string
	Image  models.MediaItem
	Active bool
}

// ProjectView is the data for a project detail page
type ProjectView struct {
	Layout
	Project     *models.Project
	Current     *models.MediaItem
	RoleLabel   string
	Thumbs      []Thumb
	Videos      []services.VideoEmbed
	Date        string
	Description string
}

// ContactView is the data for the contact page
type ContactView struct {
	Layout
	Form    models.ContactForm
	Missing map[string]bool
}

// MessageView is the data for not-found and error pages
type MessageView struct {
	Layout
	Heading   string
	Text      string
	BackURL   string
	BackLabel string
}
