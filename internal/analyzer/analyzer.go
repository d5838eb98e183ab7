// Package analyzer validates the analyze form and drives the submission.
package analyzer

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/analytics"
	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/history"
)

// Industries the service understands. Detected values outside this list are ignored.
var Industries = []string{
	"IT",
	"Finanse",
	"Marketing",
	"Sprzedaż",
	"HR",
	"Logistyka",
	"Inżynieria",
	"Prawo",
	"Zdrowie",
	"Edukacja",
	"Consulting",
	"Inne",
}

const GenericFailureMessage = "Wystąpił błąd podczas analizy."

// Backend is the part of the API client used here.
type Backend interface {
	DetectIndustry(ctx context.Context, urls []string) (string, error)
	AnalyzeCV(ctx context.Context, req *api.AnalyzeRequest) (*api.AnalysisResult, error)
}

// Outcome is a successful analysis.
type Outcome struct {
	Result       *api.AnalysisResult
	Industry     string
	AutoDetected bool
	// History is nil when archiving failed.
	History []history.Entry
}

type Service struct {
	backend Backend
	history history.Store
	events  *analytics.Dispatcher
	logger  *zap.Logger
	now     func() time.Time

	// AllErrors reports every violated constraint instead of the first one.
	AllErrors bool
}

func New(backend Backend, store history.Store, events *analytics.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend: backend,
		history: store,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit validates the form, resolves the industry, runs the analysis and archives it.
// Validation errors are returned before any network call.
func (s *Service) Submit(ctx context.Context, form *Form) (*Outcome, error) {
	validate := Validate
	if s.AllErrors {
		validate = ValidateAll
	}
	if err := validate(form); err != nil {
		return nil, err
	}

	urls := form.JobURLs()

	outcome := &Outcome{Industry: strings.TrimSpace(form.Industry)}
	if outcome.Industry == "" {
		outcome.Industry = s.detectIndustry(ctx, urls)
		outcome.AutoDetected = outcome.Industry != ""
	}

	s.logger.Info("sending cv for analysis",
		zap.Int("job_urls", len(urls)),
		zap.String("plan", form.Plan),
		zap.String("industry", outcome.Industry),
		zap.Bool("industry_auto_detected", outcome.AutoDetected),
	)

	result, err := s.backend.AnalyzeCV(ctx, &api.AnalyzeRequest{
		CV:          form.CV,
		URLs:        urls,
		Plan:        form.Plan,
		Description: form.Description,
		Industry:    outcome.Industry,
	})
	if err != nil {
		return nil, err
	}
	outcome.Result = result

	s.logger.Info("analysis received", zap.Float64("match_pct", result.DopasowanieProcentowe))

	s.events.Fire(analytics.EventAnalysisRun, map[string]any{
		"jobs":          len(urls),
		"plan":          form.Plan,
		"industry_auto": outcome.AutoDetected,
	})

	if s.history != nil {
		entries, err := s.history.Append(ctx, history.Entry{
			Date:             s.now().UTC(),
			Plan:             form.Plan,
			SelectedIndustry: outcome.Industry,
			Results:          result,
		})
		if err != nil {
			s.logger.Warn("saving analysis to history failed", zap.Error(err))
		} else {
			outcome.History = entries
		}
	}

	return outcome, nil
}

// detectIndustry is best-effort: any failure yields an empty industry.
func (s *Service) detectIndustry(ctx context.Context, urls []string) string {
	detected, err := s.backend.DetectIndustry(ctx, urls)
	if err != nil {
		s.logger.Warn("industry auto-detection failed", zap.Error(err))
		return ""
	}

	if !slices.Contains(Industries, detected) {
		if detected != "" {
			s.logger.Debug("ignoring unknown detected industry", zap.String("industry", detected))
		}
		return ""
	}

	return detected
}
