package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"remontzbt.dev/internal/config"
	"remontzbt.dev/internal/i18n"
	"remontzbt.dev/internal/middleware"
	"remontzbt.dev/internal/services"
	"remontzbt.dev/internal/web"
)

// Services are the domain services the routes call into
type Services struct {
	Projects *services.ProjectService
	Contact  *services.ContactService
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, svc Services, log logrus.FieldLogger) (http.Handler, error) {
	renderer, err := web.NewRenderer(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	pages := NewPageHandler(svc.Projects, renderer, cfg.Site, log)
	contact := NewContactHandler(svc.Contact, pages, cfg.Contact.SubmitTimeout)
	projectHandler := NewProjectHandler(svc.Projects)

	site := chi.NewRouter()
	site.Use(withLanguage)
	site.NotFound(pages.NotFound)
	site.MethodNotAllowed(pages.NotFound)

	site.Get("/", pages.Home)
	site.Get("/portfolio", pages.Portfolio)
	site.Get("/portfolio/{id}", pages.ProjectDetail)
	site.Get("/project/{id}", pages.LegacyProject)
	site.Get("/contact", contact.Show)
	site.Post("/contact", contact.Submit)

	// API routes
	site.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/categories", projectHandler.ListCategories)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Static files
	site.Handle("/static/*", http.StripPrefix(renderer.URL("/static"), web.Static()))
	if cfg.MediaDir != "" {
		if _, err := os.Stat(cfg.MediaDir); err != nil {
			log.WithError(err).WithField("dir", cfg.MediaDir).Warn("media directory unavailable")
		} else {
			site.Handle("/media/*", http.StripPrefix(renderer.URL("/media"), http.FileServer(http.Dir(cfg.MediaDir))))
		}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log, pages.Internal))

	r.NotFound(pages.NotFound)
	r.Mount(cfg.BasePath, site)
	return r, nil
}

type langKey struct{}

// withLanguage resolves the request language and persists an explicit choice
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := i18n.ResolveTag(r)
		if persist {
			i18n.SetLanguageCookie(w, tag)
		}
		ctx := context.WithValue(r.Context(), langKey{}, i18n.NewLocalizer(tag))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func localizer(r *http.Request) *i18n.Localizer {
	if l, ok := r.Context().Value(langKey{}).(*i18n.Localizer); ok {
		return l
	}
	tag, _ := i18n.ResolveTag(r)
	return i18n.NewLocalizer(tag)
}

// selection reads the category filter from the query. An absent parameter
// selects every project.
func selection(r *http.Request) services.Selection {
	values, ok := r.URL.Query()["category"]
	if !ok || len(values) == 0 {
		return services.Selection{}
	}
	return services.SelectCategory(values[0])
}

// requestGone reports whether err means the visitor went away before the
// response could be written.
func requestGone(r *http.Request, err error) bool {
	return r.Context().Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("encode json response")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
