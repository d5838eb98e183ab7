// Package star prepares STAR coach requests and reports the graded answer.
package star

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/analytics"
	"github.com/spigell/cv-analyzer/internal/api"
)

const (
	LanguagePL = "pl"
	LanguageEN = "en"

	ToneConcise      = "concise"
	ToneProfessional = "professional"
	ToneEnthusiastic = "enthusiastic"

	PlanFree = "free"
	PlanPro  = "pro"

	// MetricsScore is the score reported with the star_coached event.
	MetricsScore = "metrics"

	GenericFailureMessage = "Nie udało się wygenerować odpowiedzi. Spróbuj ponownie."
)

var (
	Languages = []string{LanguagePL, LanguageEN}
	Tones     = []string{ToneConcise, ToneProfessional, ToneEnthusiastic}
	Plans     = []string{PlanFree, PlanPro}
)

// InvalidOptionError reports an enum value the coach does not accept.
type InvalidOptionError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s %q, expected one of: %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Normalize trims every field and fills the default language, tone and plan.
func Normalize(req api.StarRequest) api.StarRequest {
	req.Situation = strings.TrimSpace(req.Situation)
	req.Task = strings.TrimSpace(req.Task)
	req.Action = strings.TrimSpace(req.Action)
	req.Result = strings.TrimSpace(req.Result)
	req.Role = strings.TrimSpace(req.Role)
	req.Language = defaultTo(strings.ToLower(strings.TrimSpace(req.Language)), LanguagePL)
	req.Tone = defaultTo(strings.ToLower(strings.TrimSpace(req.Tone)), ToneConcise)
	req.Plan = defaultTo(strings.ToLower(strings.TrimSpace(req.Plan)), PlanFree)
	return req
}

// Validate checks the enum fields of a normalized request.
func Validate(req api.StarRequest) error {
	var errs error
	errs = multierr.Append(errs, checkOption("language", req.Language, Languages))
	errs = multierr.Append(errs, checkOption("tone", req.Tone, Tones))
	errs = multierr.Append(errs, checkOption("plan", req.Plan, Plans))
	return errs
}

func checkOption(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &InvalidOptionError{Field: field, Value: value, Allowed: allowed}
}

func defaultTo(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// BarWidth maps a score to a bar width in percent, clamped to [0,100].
func BarWidth(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}

// Score is one named sub-score.
type Score struct {
	Name  string
	Value float64
}

// SortedScores returns the scores ordered by name.
func SortedScores(scores map[string]float64) []Score {
	out := make([]Score, 0, len(scores))
	for name, value := range scores {
		out = append(out, Score{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Backend is the part of the API client used by the coach.
type Backend interface {
	StarCoach(ctx context.Context, req *api.StarRequest) (*api.StarResult, error)
}

type Coach struct {
	backend Backend
	events  *analytics.Dispatcher
	logger  *zap.Logger
}

func NewCoach(backend Backend, events *analytics.Dispatcher, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{backend: backend, events: events, logger: logger}
}

// Coach sends the story and returns the graded answer.
func (c *Coach) Coach(ctx context.Context, req api.StarRequest) (*api.StarResult, error) {
	req = Normalize(req)
	if err := Validate(req); err != nil {
		return nil, err
	}

	c.logger.Info("requesting star answer",
		zap.String("language", req.Language),
		zap.String("tone", req.Tone),
		zap.String("plan", req.Plan),
	)

	result, err := c.backend.StarCoach(ctx, &req)
	if err != nil {
		return nil, err
	}

	grade := result.Grade
	if grade == "" {
		grade = "N/A"
	}
	c.events.Fire(analytics.EventStarCoached, map[string]any{
		"grade":         grade,
		"length":        result.LengthChars,
		"metrics_score": result.Scores[MetricsScore],
	})

	return result, nil
}
