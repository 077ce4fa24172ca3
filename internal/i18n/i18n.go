// Package i18n loads the embedded message catalogs and picks a language for
// each request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "remont_lang"
)

//go:embed locales/*.yaml
var localesFS embed.FS

var supported = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supported)

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds messages keyed by locale
type Catalog struct {
	messages map[language.Tag]map[string]string
}

var defaultCatalog = mustLoad()

// Default returns the embedded catalog
func Default() *Catalog {
	return defaultCatalog
}

func mustLoad() *Catalog {
	c, err := LoadFromFS(localesFS)
	if err != nil {
		panic(err)
	}
	if err := c.Register(); err != nil {
		panic(err)
	}
	return c
}

// LoadFromFS parses every locales/*.yaml file in fsys
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	c := &Catalog{messages: map[language.Tag]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if file.Locale != name {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", p, file.Locale)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		c.messages[tag] = file.Messages
	}
	return c, nil
}

// Register installs the catalog into x/text/message
func (c *Catalog) Register() error {
	for tag, msgs := range c.messages {
		for key, value := range msgs {
			if err := message.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s/%s: %w", tag, key, err)
			}
		}
	}
	return nil
}

// Has reports whether key is defined for tag
func (c *Catalog) Has(tag language.Tag, key string) bool {
	_, ok := c.messages[tag][key]
	return ok
}

// Keys returns the sorted keys defined for tag
func (c *Catalog) Keys(tag language.Tag) []string {
	out := make([]string, 0, len(c.messages[tag]))
	for k := range c.messages[tag] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultTag is the site language
func DefaultTag() language.Tag {
	return language.Russian
}

// Supported returns the languages the site is translated into
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// ParseTag matches value against the supported languages
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return DefaultTag(), false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultTag(), false
	}
	return supported[idx], true
}

// ResolveTag picks the request language from the lang query parameter, the
// preference cookie, then Accept-Language. The bool reports whether the
// query parameter chose it and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return DefaultTag(), false
	}
	if v := r.URL.Query().Get(LangParam); v != "" {
		if tag, ok := ParseTag(v); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supported[idx], false
			}
		}
	}
	return DefaultTag(), false
}

// SetLanguageCookie persists the selected language on the response
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer translates keys for one language
type Localizer struct {
	Tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for tag
func NewLocalizer(tag language.Tag) *Localizer {
	return &Localizer{Tag: tag, printer: message.NewPrinter(tag)}
}

// T translates key, formatting args into the message
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Lang returns the BCP 47 tag for the html lang attribute
func (l *Localizer) Lang() string {
	return l.Tag.String()
}

// Date formats an ISO date (YYYY-MM-DD) in long form. Unparseable values
// are returned as they are.
func (l *Localizer) Date(iso string) string {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(iso))
	if err != nil {
		if d, err = time.Parse(time.RFC3339, strings.TrimSpace(iso)); err != nil {
			return iso
		}
	}
	month := l.T(fmt.Sprintf("date.month.%d", int(d.Month())))
	return l.T("date.long", strconv.Itoa(d.Day()), month, strconv.Itoa(d.Year()))
}
