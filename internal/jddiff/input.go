// Package jddiff compares 2-5 job descriptions through the analysis service
// and turns the answer into a requirement matrix.
package jddiff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/cv-analyzer/internal/utils"
)

const (
	MinJobs = 2
	MaxJobs = 5
)

type Mode string

const (
	ModeLinks Mode = "links"
	ModeText  Mode = "text"
)

// JobCountError reports a job count outside [MinJobs, MaxJobs].
type JobCountError struct {
	Mode  Mode
	Count int
}

func (e *JobCountError) Error() string {
	switch e.Mode {
	case ModeText:
		return fmt.Sprintf("paste %d-%d job description blocks separated by a line of ---, got %d", MinJobs, MaxJobs, e.Count)
	default:
		return fmt.Sprintf("provide %d-%d job posting links, one per line, got %d", MinJobs, MaxJobs, e.Count)
	}
}

var separator = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)

// ParseLinks splits the links field into trimmed non-blank lines.
func ParseLinks(raw string) []string {
	return utils.SplitLines(raw)
}

// ParseLabels splits the optional labels field, one label per line.
func ParseLabels(raw string) []string {
	return utils.SplitLines(raw)
}

// ParseTextJobs splits pasted descriptions on lines made of three or more dashes.
// Blank blocks are dropped.
func ParseTextJobs(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	blocks := make([]string, 0)
	for _, block := range separator.Split(raw, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// CheckCount enforces the job bound for mode.
func CheckCount(mode Mode, count int) error {
	if count < MinJobs || count > MaxJobs {
		return &JobCountError{Mode: mode, Count: count}
	}
	return nil
}
