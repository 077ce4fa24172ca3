package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"remontzbt.dev/internal/models"
)

// ErrProjectNotFound is returned when no project matches a requested id
var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project-related operations
type ProjectService struct {
	loader ProjectLoader
	log    logrus.FieldLogger
}

// NewProjectService creates a new ProjectService
func NewProjectService(loader ProjectLoader, log logrus.FieldLogger) *ProjectService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProjectService{loader: loader, log: log}
}

// Load fetches a fresh copy of the collection. On a load failure it returns
// an empty collection together with the error so callers can render an
// error state. When ctx is done the result is dropped and ctx.Err() is
// returned.
func (s *ProjectService) Load(ctx context.Context) ([]models.Project, error) {
	projects, err := s.loader.LoadProjects(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		s.log.WithError(err).Warn("projects load failed")
		return []models.Project{}, err
	}
	return projects, nil
}

// Featured returns the first n projects of the collection
func Featured(projects []models.Project, n int) []models.Project {
	if n < 0 {
		n = 0
	}
	if n > len(projects) {
		n = len(projects)
	}
	return projects[:n:n]
}

// Category is one entry of the category filter. The synthetic entry that
// selects every project has All set and an empty Name, so no value found in
// the data can collide with it.
type Category struct {
	Name string `json:"name"`
	All  bool   `json:"all,omitempty"`
}

// Selection is the category chosen for a listing. The zero value selects
// every project.
type Selection struct {
	Category string
	Filtered bool
}

// SelectCategory selects the projects whose category equals name exactly
func SelectCategory(name string) Selection {
	return Selection{Category: name, Filtered: true}
}

// Matches reports whether c is the entry the selection picks
func (s Selection) Matches(c Category) bool {
	if c.All {
		return !s.Filtered
	}
	return s.Filtered && s.Category == c.Name
}

// Categories returns the synthetic "all" entry followed by each distinct
// category in the order it first occurs.
func Categories(projects []models.Project) []Category {
	out := []Category{{All: true}}
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, Category{Name: p.Category})
	}
	return out
}

// FilterByCategory returns the projects sel picks, preserving order. The
// result is never nil.
func FilterByCategory(projects []models.Project, sel Selection) []models.Project {
	if !sel.Filtered {
		out := make([]models.Project, len(projects))
		copy(out, projects)
		return out
	}
	out := []models.Project{}
	for _, p := range projects {
		if p.Category == sel.Category {
			out = append(out, p)
		}
	}
	return out
}

// ResolveProject finds the first project whose id equals rawID parsed as an
// integer.
func ResolveProject(projects []models.Project, rawID string) (*models.Project, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return nil, ErrProjectNotFound
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, ErrProjectNotFound
}
