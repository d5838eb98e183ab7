package jddiff

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/analytics"
	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/cvfile"
)

const GenericFailureMessage = "Nie udało się porównać ogłoszeń. Sprawdź dane i spróbuj ponownie."

// Backend is the part of the API client used by the comparer.
type Backend interface {
	JDDiffFromLinks(ctx context.Context, urls []string, cv *cvfile.File) (*api.Diff, error)
	JDDiffFromText(ctx context.Context, texts, labels []string) (*api.Diff, error)
}

type Comparer struct {
	backend Backend
	events  *analytics.Dispatcher
	logger  *zap.Logger
}

func NewComparer(backend Backend, events *analytics.Dispatcher, logger *zap.Logger) *Comparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparer{backend: backend, events: events, logger: logger}
}

// CompareLinks compares postings by URL. cv is optional.
func (c *Comparer) CompareLinks(ctx context.Context, rawLinks string, cv *cvfile.File) (*api.Diff, error) {
	urls := ParseLinks(rawLinks)
	if err := CheckCount(ModeLinks, len(urls)); err != nil {
		return nil, err
	}

	c.logger.Info("comparing job postings", zap.String("mode", string(ModeLinks)), zap.Int("jobs", len(urls)), zap.Bool("with_cv", cv != nil))

	diff, err := c.backend.JDDiffFromLinks(ctx, urls, cv)
	if err != nil {
		return nil, err
	}

	withCV := "0"
	if cv != nil {
		withCV = "1"
	}
	c.events.Fire(analytics.EventJDDiffRun, map[string]any{"jobs": len(urls), "with_cv": withCV, "mode": string(ModeLinks)})

	return diff, nil
}

// CompareText compares pasted descriptions. There is no CV in this mode.
func (c *Comparer) CompareText(ctx context.Context, rawText, rawLabels string) (*api.Diff, error) {
	texts := ParseTextJobs(rawText)
	if err := CheckCount(ModeText, len(texts)); err != nil {
		return nil, err
	}
	labels := ParseLabels(rawLabels)

	c.logger.Info("comparing job postings", zap.String("mode", string(ModeText)), zap.Int("jobs", len(texts)), zap.Int("labels", len(labels)))

	diff, err := c.backend.JDDiffFromText(ctx, texts, labels)
	if err != nil {
		return nil, err
	}

	c.events.Fire(analytics.EventJDDiffRun, map[string]any{"jobs": len(texts), "with_cv": "0", "mode": string(ModeText)})

	return diff, nil
}

// UniqueOrder returns the unique_by_job keys in job order: per_job names first,
// then requirements_by_job labels, then anything left in sorted order.
func UniqueOrder(diff *api.Diff) []string {
	if diff == nil {
		return nil
	}

	keys := make([]string, 0, len(diff.UniqueByJob))
	seen := make(map[string]struct{}, len(diff.UniqueByJob))
	add := func(k string) {
		if _, ok := diff.UniqueByJob[k]; !ok {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	for _, job := range diff.PerJob {
		add(job.URL)
		add(job.Label)
	}
	for _, job := range diff.RequirementsByJob {
		add(job.Label)
		add(job.ID)
	}

	rest := make([]string, 0)
	for k := range diff.UniqueByJob {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)

	return append(keys, rest...)
}
