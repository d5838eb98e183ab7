package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/cv-analyzer/internal/cvfile"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"
)

// readText returns value, or the content of file when value is empty. "-" reads stdin.
func readText(value, file string) (string, error) {
	if value != "" || file == "" {
		return value, nil
	}

	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return string(data), nil
}

// joinURLs merges repeated --url values with a newline separated --urls value.
func joinURLs(repeated []string, block string) string {
	lines := make([]string, 0, len(repeated)+1)
	if strings.TrimSpace(block) != "" {
		lines = append(lines, block)
	}
	lines = append(lines, repeated...)
	return strings.Join(lines, "\n")
}

// loadCV loads the optional cv file and logs what could be read from it.
func (s *session) loadCV(path string) *cvfile.File {
	cv, err := cvfile.Load(path)
	if err != nil {
		s.fatal("loading cv", err)
	}
	if cv == nil {
		return nil
	}

	preview, err := cv.Inspect()
	if err != nil {
		s.logger.Warn("cv text could not be extracted, the service may reject it", zap.String("file", cv.Name), zap.Error(err))
		return cv
	}
	s.logger.Debug("cv loaded", zap.String("file", cv.Name), zap.String("content_type", cv.ContentType), zap.Int("pages", preview.Pages), zap.Int("words", preview.Words))

	return cv
}

// selectOne runs a picker starting at cursor and returns the chosen index.
func selectOne(label string, items []string, cursor int) (int, error) {
	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Size:      10,
		CursorPos: cursor,
	}
	idx, _, err := prompt.Run()
	return idx, err
}

// confirm asks a yes/no question.
func confirm(label string) bool {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := prompt.Run()
	return err == nil
}
