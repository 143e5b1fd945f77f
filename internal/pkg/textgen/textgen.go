// Package textgen produces the narrative texts shown next to a student:
// risk stories, resources, guardian email drafts, intervention plans and
// simplified syllabus text.
package textgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/mentoraid/internal/app/models"
)

// Kind selects what to generate
type Kind string

const (
	KindRiskStory        Kind = "risk_story"
	KindResources        Kind = "resources"
	KindEmailDraft       Kind = "email_draft"
	KindInterventionPlan Kind = "intervention_plan"
	KindSyllabus         Kind = "syllabus"
)

// Kinds lists every supported kind
var Kinds = []Kind{KindRiskStory, KindResources, KindEmailDraft, KindInterventionPlan, KindSyllabus}

// Valid reports whether k is a supported kind
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Errors returned by generators
var (
	ErrUnknownKind = errors.New("unknown generation kind")
	ErrEmptyInput  = errors.New("input text is required")
)

// Request asks for one piece of text about a student. Input is free text
// used by kinds that transform user-provided content.
type Request struct {
	Kind    Kind
	Student models.Student
	Input   string
}

// Response is the generated text
type Response struct {
	Kind    Kind
	Content string
}

// Generator turns requests into text. Implementations must return promptly
// with ctx.Err() once ctx is done.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Validate checks a request before any work is done
func (r Request) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	if r.Kind == KindSyllabus && isBlank(r.Input) {
		return ErrEmptyInput
	}
	return nil
}
