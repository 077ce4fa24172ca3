package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"remontzbt.dev/internal/i18n"
	"remontzbt.dev/internal/models"
	"remontzbt.dev/internal/services"
	"remontzbt.dev/internal/web"
)

// ContactHandler serves the contact page and accepts requests
type ContactHandler struct {
	contactService *services.ContactService
	pages          *PageHandler
	timeout        time.Duration
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(cs *services.ContactService, pages *PageHandler, timeout time.Duration) *ContactHandler {
	return &ContactHandler{contactService: cs, pages: pages, timeout: timeout}
}

// Show handles GET /contact
func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	view := h.view(r, l, models.ContactForm{})
	if r.URL.Query().Get("sent") == "1" {
		view.Flash = &web.Flash{Kind: "success", Message: l.T("contact.success")}
	}
	h.render(w, r, http.StatusOK, view)
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	if err := r.ParseForm(); err != nil {
		view := h.view(r, l, models.ContactForm{})
		view.Flash = &web.Flash{Kind: "error", Message: l.T("contact.failure")}
		h.render(w, r, http.StatusBadRequest, view)
		return
	}
	form := models.ContactForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Message: r.PostForm.Get("message"),
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if _, err := h.contactService.Submit(ctx, form); err != nil {
		if requestGone(r, err) {
			return
		}
		view := h.view(r, l, form)
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			view.Missing = make(map[string]bool, len(verr.Missing))
			for _, field := range verr.Missing {
				view.Missing[field] = true
			}
			view.Flash = &web.Flash{Kind: "error", Message: l.T("contact.required")}
			h.render(w, r, http.StatusUnprocessableEntity, view)
			return
		}
		view.Flash = &web.Flash{Kind: "error", Message: l.T("contact.failure")}
		h.render(w, r, http.StatusBadGateway, view)
		return
	}

	http.Redirect(w, r, h.pages.renderer.URL("/contact?sent=1"), http.StatusSeeOther)
}

func (h *ContactHandler) view(r *http.Request, l *i18n.Localizer, form models.ContactForm) web.ContactView {
	return web.ContactView{
		Layout: h.pages.layout(r, l, navContact, l.T("title.contact")),
		Form:   form,
	}
}

func (h *ContactHandler) render(w http.ResponseWriter, r *http.Request, status int, view web.ContactView) {
	web.RenderPage(w, r, status, nil, h.pages.renderer.Page(web.PageContact, view))
}
