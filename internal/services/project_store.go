package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"remontzbt.dev/internal/models"
)

// ProjectLoader retrieves the full project collection. Implementations make
// a single attempt per call and never cache between calls.
type ProjectLoader interface {
	LoadProjects(ctx context.Context) ([]models.Project, error)
}

// LoadErrorKind classifies a failed load
type LoadErrorKind string

const (
	LoadErrorRead  LoadErrorKind = "read"
	LoadErrorParse LoadErrorKind = "parse"
)

// LoadError reports why the project document could not be loaded
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load projects from %s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileLoader reads the project document from disk on every call
type FileLoader struct {
	Path string
}

// NewFileLoader creates a FileLoader for path
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// LoadProjects implements ProjectLoader
func (l *FileLoader) LoadProjects(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorRead, Source: l.Path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeProjects(l.Path, data)
}

// DefaultMaxDocumentBytes caps the size of a remote project document
const DefaultMaxDocumentBytes = 8 << 20

// HTTPLoader fetches the project document from a URL
type HTTPLoader struct {
	URL    string
	Client *http.Client
	// MaxBytes bounds the response body. Zero means DefaultMaxDocumentBytes.
	MaxBytes int64
}

// NewHTTPLoader creates an HTTPLoader with a bounded client timeout
func NewHTTPLoader(url string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		URL:      url,
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: DefaultMaxDocumentBytes,
	}
}

// LoadProjects implements ProjectLoader
func (l *HTTPLoader) LoadProjects(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorRead, Source: l.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &LoadError{Kind: LoadErrorRead, Source: l.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{Kind: LoadErrorRead, Source: l.URL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxDocumentBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorRead, Source: l.URL, Err: err}
	}
	if int64(len(data)) > limit {
		return nil, &LoadError{Kind: LoadErrorRead, Source: l.URL, Err: fmt.Errorf("document exceeds %d bytes", limit)}
	}
	return DecodeProjects(l.URL, data)
}

// DecodeProjects parses a project document. The top level must be an array
// and ids must be unique.
func DecodeProjects(source string, data []byte) ([]models.Project, error) {
	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, &LoadError{Kind: LoadErrorParse, Source: source, Err: err}
	}
	if projects == nil {
		projects = []models.Project{}
	}

	seen := make(map[int]struct{}, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.ID]; dup {
			return nil, &LoadError{Kind: LoadErrorParse, Source: source, Err: fmt.Errorf("duplicate project id %d", p.ID)}
		}
		seen[p.ID] = struct{}{}
	}
	return projects, nil
}

// CheckProjects reports data problems that do not stop the site from
// rendering but usually mean an entry was filled in by mistake.
func CheckProjects(projects []models.Project) []string {
	var issues []string
	for _, p := range projects {
		if strings.TrimSpace(p.Title) == "" {
			issues = append(issues, fmt.Sprintf("project %d: empty title", p.ID))
		}
		if strings.TrimSpace(p.Category) == "" {
			issues = append(issues, fmt.Sprintf("project %d: empty category", p.ID))
		}
		if p.Date != "" {
			if _, err := time.Parse("2006-01-02", p.Date); err != nil {
				issues = append(issues, fmt.Sprintf("project %d: date %q is not YYYY-MM-DD", p.ID, p.Date))
			}
		}
		for i, img := range p.Images {
			if strings.TrimSpace(img.URL) == "" {
				issues = append(issues, fmt.Sprintf("project %d: image %d has no url", p.ID, i))
			}
		}
		for i, v := range p.Videos {
			if strings.TrimSpace(v.URL) == "" {
				issues = append(issues, fmt.Sprintf("project %d: video %d has no url", p.ID, i))
			}
		}
	}
	return issues
}
