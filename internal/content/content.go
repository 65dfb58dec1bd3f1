// Package content loads the portfolio's sections, dock and widget data from
// a YAML document and keeps the current copy available to handlers.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/portfolio/backend/internal/domain"
)

//go:embed default.yaml
var defaultDocument []byte

// ErrSectionNotFound is returned when a section id is not in the document.
var ErrSectionNotFound = errors.New("content: section not found")

// Link is an outbound profile link
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Profile is the site owner's card
type Profile struct {
	Name      string        `yaml:"name" json:"name"`
	Title     string        `yaml:"title" json:"title"`
	Avatar    string        `yaml:"avatar" json:"avatar"`
	Email     string        `yaml:"email" json:"email"`
	ResumeURL string        `yaml:"resume_url" json:"resume_url"`
	Tagline   string        `yaml:"tagline" json:"tagline"`
	About     string        `yaml:"about" json:"about"`
	AboutHTML template.HTML `yaml:"-" json:"about_html"`
	Socials   []Link        `yaml:"socials" json:"socials"`
}

// Section is a scroll target on the page
type Section struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Gradient string `yaml:"gradient" json:"gradient"`
}

// App is a home screen or dock icon
type App struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Icon     string `yaml:"icon" json:"icon"`
	Gradient string `yaml:"gradient" json:"gradient"`
	URL      string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Href is the app's link target: its URL, or the anchor of its section.
func (a App) Href() string {
	if a.URL != "" {
		return a.URL
	}
	return "#" + a.ID
}

// Project is a card in the projects section
type Project struct {
	Title       string        `yaml:"title" json:"title"`
	Summary     string        `yaml:"summary" json:"summary"`
	SummaryHTML template.HTML `yaml:"-" json:"summary_html"`
	Image       string        `yaml:"image,omitempty" json:"image,omitempty"`
	URL         string        `yaml:"url,omitempty" json:"url,omitempty"`
	Tags        []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// SkillGroup is one labelled list of skills
type SkillGroup struct {
	Name     string   `yaml:"name" json:"name"`
	Gradient string   `yaml:"gradient" json:"gradient"`
	Items    []string `yaml:"items" json:"items"`
}

// Experience is a resume entry
type Experience struct {
	Title   string `yaml:"title" json:"title"`
	Company string `yaml:"company" json:"company"`
	Period  string `yaml:"period" json:"period"`
	Type    string `yaml:"type" json:"type"`
}

// Education is a resume education entry
type Education struct {
	Field  string `yaml:"field" json:"field"`
	School string `yaml:"school" json:"school"`
	Period string `yaml:"period" json:"period"`
}

// Content is the whole portfolio document
type Content struct {
	Profile    Profile       `yaml:"profile" json:"profile"`
	Sections   []Section     `yaml:"sections" json:"sections"`
	Apps       []App         `yaml:"apps" json:"apps"`
	Dock       []App         `yaml:"dock" json:"dock"`
	Projects   []Project     `yaml:"projects" json:"projects"`
	Skills     []SkillGroup  `yaml:"skills" json:"skills"`
	Experience []Experience  `yaml:"experience" json:"experience"`
	Education  []Education   `yaml:"education" json:"education"`
	Stats      []domain.Stat `yaml:"stats" json:"stats"`
}

// Section looks a section up by id.
func (c *Content) Section(id string) (Section, error) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%w: %q", ErrSectionNotFound, id)
}

// Counts returns the number of entries per section, for metrics.
func (c *Content) Counts() map[string]int {
	return map[string]int{
		"sections":   len(c.Sections),
		"apps":       len(c.Apps) + len(c.Dock),
		"projects":   len(c.Projects),
		"skills":     len(c.Skills),
		"experience": len(c.Experience),
		"education":  len(c.Education),
		"stats":      len(c.Stats),
	}
}

// Default returns the embedded document.
func Default() (*Content, error) {
	return Parse(defaultDocument)
}

// LoadFile reads and parses a document from disk.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, validates it and renders markdown fields.
func Parse(data []byte) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("content: failed to decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := c.render(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	if c.Profile.Name == "" {
		return errors.New("content: profile.name is required")
	}
	if len(c.Stats) == 0 {
		return errors.New("content: at least one stat is required")
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if s.ID == "" {
			return errors.New("content: section without id")
		}
		if seen[s.ID] {
			return fmt.Errorf("content: duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

func (c *Content) render() error {
	html, err := renderMarkdown(c.Profile.About)
	if err != nil {
		return fmt.Errorf("content: failed to render about: %w", err)
	}
	c.Profile.AboutHTML = html

	for i := range c.Projects {
		html, err := renderMarkdown(c.Projects[i].Summary)
		if err != nil {
			return fmt.Errorf("content: failed to render project %q: %w", c.Projects[i].Title, err)
		}
		c.Projects[i].SummaryHTML = html
	}
	return nil
}

// Content authors own the document, so the rendered HTML is trusted.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
