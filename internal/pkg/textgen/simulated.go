package textgen

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
)

// DefaultLatency mimics the response time of a hosted language model
const DefaultLatency = 2 * time.Second

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"upper":    strings.ToUpper,
	"lastName": lastName,
}

// Simulated renders fixed templates after a fixed delay
type Simulated struct {
	latency   time.Duration
	templates *template.Template
	logger    zerolog.Logger
}

// NewSimulated creates a simulated generator. A negative latency is treated as zero.
func NewSimulated(latency time.Duration, logger zerolog.Logger) (*Simulated, error) {
	tmpl, err := template.New("textgen").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if latency < 0 {
		latency = 0
	}
	return &Simulated{latency: latency, templates: tmpl, logger: logger}, nil
}

// Generate waits for the configured latency and renders the kind's template
func (s *Simulated) Generate(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	start := time.Now()
	if err := helpers.Sleep(ctx, s.latency); err != nil {
		s.logger.Debug().Str("kind", string(req.Kind)).Str("studentID", req.Student.ID).Msg("Generation cancelled")
		return Response{}, err
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, string(req.Kind)+".tmpl", req.Student); err != nil {
		return Response{}, fmt.Errorf("render %s: %w", req.Kind, err)
	}

	s.logger.Debug().
		Str("kind", string(req.Kind)).
		Str("studentID", req.Student.ID).
		Dur("elapsed", time.Since(start)).
		Msg("Text generated")

	return Response{Kind: req.Kind, Content: strings.TrimRight(buf.String(), "\n")}, nil
}

func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
