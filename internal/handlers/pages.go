package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"remontzbt.dev/internal/config"
	"remontzbt.dev/internal/i18n"
	"remontzbt.dev/internal/models"
	"remontzbt.dev/internal/services"
	"remontzbt.dev/internal/web"
)

// nav ids
const (
	navHome      = "home"
	navPortfolio = "portfolio"
	navContact   = "contact"
)

// PageHandler renders the HTML pages
type PageHandler struct {
	projects *services.ProjectService
	renderer *web.Renderer
	site     *config.Site
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(ps *services.ProjectService, renderer *web.Renderer, site *config.Site, log logrus.FieldLogger) *PageHandler {
	if site == nil {
		site = config.DefaultSite()
	}
	return &PageHandler{projects: ps, renderer: renderer, site: site, log: log, now: time.Now}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	projects, err := h.projects.Load(r.Context())
	if requestGone(r, err) {
		return
	}

	view := web.HomeView{Layout: h.layout(r, l, navHome, l.T("title.home"))}
	status := http.StatusOK
	if err != nil {
		view.LoadError = l.T("error.load")
		status = http.StatusServiceUnavailable
	}
	for _, p := range services.Featured(projects, h.site.FeaturedCount) {
		img, _ := p.CoverImage()
		view.Featured = append(view.Featured, h.card(p, img))
	}

	web.RenderPage(w, r, status, nil, h.renderer.Page(web.PageHome, view))
}

// Portfolio handles GET /portfolio?category=
func (h *PageHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	projects, err := h.projects.Load(r.Context())
	if requestGone(r, err) {
		return
	}

	sel := selection(r)
	view := web.PortfolioView{Layout: h.layout(r, l, navPortfolio, l.T("title.portfolio"))}
	status := http.StatusOK
	if err != nil {
		view.LoadError = l.T("error.load")
		status = http.StatusServiceUnavailable
	}

	for _, c := range services.Categories(projects) {
		link := web.Link{Label: c.Name, URL: h.renderer.URL("/portfolio"), Active: sel.Matches(c)}
		if c.All {
			link.Label = l.T("category.all")
		} else {
			link.URL += "?" + url.Values{"category": {c.Name}}.Encode()
		}
		view.Categories = append(view.Categories, link)
	}
	for _, p := range services.FilterByCategory(projects, sel) {
		img, _ := p.PrimaryImage()
		view.Projects = append(view.Projects, h.card(p, img))
	}

	web.RenderPage(w, r, status,
		h.renderer.Fragment(web.PagePortfolio, "portfolio-fragment", view),
		h.renderer.Page(web.PagePortfolio, view))
}

// ProjectDetail handles GET /portfolio/{id}?image=
func (h *PageHandler) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	projects, err := h.projects.Load(r.Context())
	if requestGone(r, err) {
		return
	}
	if err != nil {
		h.renderMessage(w, r, http.StatusServiceUnavailable, web.PageError, l.T("title.error"), l.T("error.load"), "/portfolio", l.T("project.back"))
		return
	}

	project, err := services.ResolveProject(projects, chi.URLParam(r, "id"))
	if err != nil {
		h.log.WithField("id", chi.URLParam(r, "id")).Debug("project not found")
		h.renderMessage(w, r, http.StatusNotFound, web.PageNotFound, l.T("project.not_found_title"), l.T("project.not_found_text"), "/portfolio", l.T("project.back"))
		return
	}

	gallery := services.NewGallery(project)
	if k, err := strconv.Atoi(r.URL.Query().Get("image")); err == nil {
		gallery.Select(k)
	}

	view := web.ProjectView{
		Layout:      h.layout(r, l, navPortfolio, project.Title),
		Project:     project,
		Videos:      gallery.Videos(),
		Date:        l.Date(project.Date),
		Description: project.Summary(),
	}
	if img, ok := gallery.Current(); ok {
		view.Current = &img
		view.RoleLabel = roleLabel(l, img.Type)
	}
	for _, th := range gallery.Thumbnails() {
		view.Thumbs = append(view.Thumbs, web.Thumb{
			URL:    h.renderer.URL(fmt.Sprintf("/portfolio/%d?image=%d", project.ID, th.Index)),
			Image:  th.Image,
			Active: th.Active,
		})
	}

	web.RenderPage(w, r, http.StatusOK,
		h.renderer.Fragment(web.PageProject, "gallery-fragment", view),
		h.renderer.Page(web.PageProject, view))
}

// LegacyProject redirects /project/{id} to the canonical detail route
func (h *PageHandler) LegacyProject(w http.ResponseWriter, r *http.Request) {
	target := h.renderer.URL("/portfolio/" + url.PathEscape(chi.URLParam(r, "id")))
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// NotFound renders the fallback page for unknown paths
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	h.renderMessage(w, r, http.StatusNotFound, web.PageNotFound, l.T("title.not_found"), l.T("error.not_found_text"), "/", l.T("error.back_home"))
}

// Internal renders the error page after a panic
func (h *PageHandler) Internal(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	h.renderMessage(w, r, http.StatusInternalServerError, web.PageError, l.T("title.error"), l.T("error.internal"), "/", l.T("error.back_home"))
}

func (h *PageHandler) renderMessage(w http.ResponseWriter, r *http.Request, status int, page, heading, text, back, backLabel string) {
	l := localizer(r)
	view := web.MessageView{
		Layout:    h.layout(r, l, "", heading),
		Heading:   heading,
		Text:      text,
		BackURL:   h.renderer.URL(back),
		BackLabel: backLabel,
	}
	if web.IsHTMXRequest(r) {
		web.Retarget(w, "#main")
	}
	web.RenderPage(w, r, status, nil, h.renderer.Page(page, view))
}

func (h *PageHandler) layout(r *http.Request, l *i18n.Localizer, active, title string) web.Layout {
	nav := []web.Link{
		{Label: l.T("nav.home"), URL: h.renderer.URL("/"), Active: active == navHome},
		{Label: l.T("nav.portfolio"), URL: h.renderer.URL("/portfolio"), Active: active == navPortfolio},
		{Label: l.T("nav.contact"), URL: h.renderer.URL("/contact"), Active: active == navContact},
	}

	var langs []web.Link
	for _, tag := range i18n.Supported() {
		q := r.URL.Query()
		q.Set(i18n.LangParam, tag.String())
		langs = append(langs, web.Link{
			Label:  l.T("lang." + tag.String()),
			URL:    (&url.URL{Path: r.URL.Path, RawQuery: q.Encode()}).String(),
			Active: tag == l.Tag,
		})
	}

	return web.Layout{
		Title: title,
		L:     l,
		Site:  h.site,
		Nav:   nav,
		Langs: langs,
		Year:  strconv.Itoa(h.now().Year()),
	}
}

func (h *PageHandler) card(p models.Project, img models.MediaItem) web.Card {
	alt := img.Alt
	if alt == "" {
		alt = p.Title
	}
	return web.Card{
		ID:          p.ID,
		URL:         h.renderer.URL(fmt.Sprintf("/portfolio/%d", p.ID)),
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Cost:        p.Cost,
		Duration:    p.Duration,
		ImageURL:    img.URL,
		ImageAlt:    alt,
	}
}

func roleLabel(l *i18n.Localizer, role models.MediaRole) string {
	switch role {
	case models.MediaBefore:
		return "📷 " + l.T("project.before")
	case models.MediaAfter:
		return "✨ " + l.T("project.after")
	default:
		return ""
	}
}
