package analyzer

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/spigell/cv-analyzer/internal/cvfile"
	"github.com/spigell/cv-analyzer/internal/utils"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"

	MaxDescriptionWords = 1000
	MaxProURLs          = 5
)

// PlanLimits is the number of postings each plan may analyze at once.
var PlanLimits = map[string]int{
	PlanFree: 1,
	PlanPro:  MaxProURLs,
}

type MissingFileError struct{}

func (MissingFileError) Error() string { return "a cv file is required" }

type NoURLsError struct{}

func (NoURLsError) Error() string { return "at least one job posting link is required" }

type UnknownPlanError struct {
	Plan string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown plan %q, expected %q or %q", e.Plan, PlanFree, PlanPro)
}

type PlanLimitError struct {
	Plan  string
	Count int
	Limit int
}

func (e *PlanLimitError) Error() string {
	if e.Plan == PlanFree {
		return fmt.Sprintf("the free plan analyzes exactly %d job posting, got %d", e.Limit, e.Count)
	}
	return fmt.Sprintf("the %s plan analyzes at most %d job postings, got %d", e.Plan, e.Limit, e.Count)
}

type DescriptionTooLongError struct {
	Words int
	Limit int
}

func (e *DescriptionTooLongError) Error() string {
	return fmt.Sprintf("description exceeds the %d word limit (current: %d)", e.Limit, e.Words)
}

// Form is the raw analyze input.
type Form struct {
	CV          *cvfile.File
	URLs        string
	Plan        string
	Description string
	Industry    string
}

// JobURLs returns the trimmed, non-blank lines of the URL field.
func (f *Form) JobURLs() []string {
	return utils.SplitLines(f.URLs)
}

// rule is a single check. Rules run in declaration order.
type rule struct {
	name  string
	check func(f *Form, urls []string) error
}

var rules = []rule{
	{name: "file", check: checkFile},
	{name: "urls", check: checkURLs},
	{name: "plan", check: checkPlan},
	{name: "description", check: checkDescription},
}

// Validate returns the first violated constraint.
func Validate(f *Form) error {
	urls := f.JobURLs()
	for _, r := range rules {
		if err := r.check(f, urls); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll returns every violated constraint combined with multierr.
func ValidateAll(f *Form) error {
	urls := f.JobURLs()
	var errs error
	for _, r := range rules {
		errs = multierr.Append(errs, r.check(f, urls))
	}
	return errs
}

func checkFile(f *Form, _ []string) error {
	if f.CV == nil || len(f.CV.Data) == 0 {
		return MissingFileError{}
	}
	return nil
}

func checkURLs(_ *Form, urls []string) error {
	if len(urls) == 0 {
		return NoURLsError{}
	}
	return nil
}

func checkPlan(f *Form, urls []string) error {
	limit, ok := PlanLimits[f.Plan]
	if !ok {
		return &UnknownPlanError{Plan: f.Plan}
	}

	count := len(urls)
	if count == 0 {
		// reported by the urls rule
		return nil
	}

	if f.Plan == PlanFree && count != limit {
		return &PlanLimitError{Plan: f.Plan, Count: count, Limit: limit}
	}
	if count > limit {
		return &PlanLimitError{Plan: f.Plan, Count: count, Limit: limit}
	}
	return nil
}

func checkDescription(f *Form, _ []string) error {
	if words := utils.CountWords(f.Description); words > MaxDescriptionWords {
		return &DescriptionTooLongError{Words: words, Limit: MaxDescriptionWords}
	}
	return nil
}
