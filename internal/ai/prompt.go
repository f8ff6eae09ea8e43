package ai

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Dmetrikx/learnkeybot/internal/personality"
)

// Composer renders a personality vector and user content into a Request
type Composer struct {
	tmpl     *template.Template
	traits   []personality.Trait
	location *time.Location
}

// NewComposer parses the system template matching the profile. Timestamps
// added to text content are rendered in loc.
func NewComposer(profile personality.Profile, loc *time.Location) (*Composer, error) {
	text := hostedPersona
	if profile.Name == personality.LocalProfile.Name {
		text = localPersona
	}

	tmpl, err := template.New(profile.Name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system template: %w", err)
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Composer{
		tmpl:     tmpl,
		traits:   profile.Traits,
		location: loc,
	}, nil
}

// Compose substitutes every trait value into the system template
func (c *Composer) Compose(v personality.Vector, content string) (Request, error) {
	if strings.TrimSpace(content) == "" {
		return Request{}, NewValidationError("content", "cannot be empty")
	}

	for _, t := range c.traits {
		if !v.Has(t) {
			return Request{}, &MissingTraitError{Trait: string(t)}
		}
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, v.Values()); err != nil {
		return Request{}, fmt.Errorf("failed to render system template: %w", err)
	}

	return Request{
		SystemInstructions: buf.String(),
		UserContent:        content,
	}, nil
}

// TextContent prefixes a user's text with the current local time so the
// model can reason about deadlines.
func (c *Composer) TextContent(now time.Time, text string) string {
	return fmt.Sprintf("Current time: %s\n\n%s", now.In(c.location).Format("2006-01-02 15:04:05"), text)
}

// DocumentContent combines an optional caption with text extracted from a PDF
func DocumentContent(caption, text string) string {
	if strings.TrimSpace(caption) == "" {
		return text
	}
	return fmt.Sprintf("Caption: %s\n\nPDF Content:\n%s", caption, text)
}
