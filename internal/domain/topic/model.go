// Package topic provides the Topic entity, the subject-area grouping for
// questions.
package topic

import (
	"context"
	"regexp"
	"strings"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Topic groups questions by subject area. Slug is unique among live topics.
type Topic struct {
	entity.Base

	Slug        string  `db:"slug" json:"slug"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description,omitempty"`
}

// New creates a Topic with a slug derived from the title when absent.
func New(slug, title string) *Topic {
	if slug == "" {
		slug = Slugify(title)
	}
	return &Topic{
		Base:  entity.NewBase(),
		Slug:  slug,
		Title: title,
	}
}

// Validate implements entity.Validatable.
func (t *Topic) Validate(_ context.Context) error {
	if t.Title == "" {
		return apperror.NewValidation("title is required").WithDetail("field", "title")
	}
	if t.Slug == "" {
		return apperror.NewValidation("slug is required").WithDetail("field", "slug")
	}
	if !slugRe.MatchString(t.Slug) {
		return apperror.NewValidation("slug must be lowercase alphanumeric with hyphens").
			WithDetail("field", "slug").
			WithDetail("value", t.Slug)
	}
	return nil
}

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
