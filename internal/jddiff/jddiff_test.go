package jddiff

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/cvfile"
)

func ptr(v float64) *float64 { return &v }

func TestParseTextJobs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "two blocks",
			input:  "DevOps at A\n---\nSRE at B",
			expect: []string{"DevOps at A", "SRE at B"},
		},
		{
			name:   "long separators and crlf",
			input:  "one\r\n-----\r\ntwo\r\n  ---  \r\nthree",
			expect: []string{"one", "two", "three"},
		},
		{
			name:   "blank blocks dropped",
			input:  "---\none\n---\n   \n---\ntwo\n---",
			expect: []string{"one", "two"},
		},
		{
			name:   "two dashes do not separate",
			input:  "one\n--\ntwo",
			expect: []string{"one\n--\ntwo"},
		},
		{
			name:   "dashes inside text do not separate",
			input:  "salary --- negotiable\n---\ntwo",
			expect: []string{"salary --- negotiable", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ParseTextJobs(tt.input))
		})
	}
}

func TestCheckCount(t *testing.T) {
	for count := 0; count <= 7; count++ {
		for _, mode := range []Mode{ModeLinks, ModeText} {
			err := CheckCount(mode, count)
			if count >= MinJobs && count <= MaxJobs {
				assert.NoError(t, err)
				continue
			}

			var countErr *JobCountError
			require.True(t, errors.As(err, &countErr), "count %d mode %s", count, mode)
			assert.Equal(t, mode, countErr.Mode)
		}
	}

	assert.Contains(t, CheckCount(ModeText, 1).Error(), "---")
	assert.Contains(t, CheckCount(ModeLinks, 6).Error(), "links")
}

func TestBuildMatrix(t *testing.T) {
	diff := &api.Diff{RequirementsByJob: []api.JobRequirements{
		{ID: "1", Label: "A", Requirements: []string{"x", "y"}},
		{ID: "2", Label: "B", Requirements: []string{"y"}},
	}}

	m := BuildMatrix(diff)
	require.NotNil(t, m)

	assert.Equal(t, []string{"Wymaganie", "A", "B"}, m.Header)
	assert.Equal(t, []Row{
		{Requirement: "x", Presence: []int{1, 0}},
		{Requirement: "y", Presence: []int{1, 1}},
	}, m.Rows)
	assert.Equal(t, "Wymaganie,A,B\nx,1,0\ny,1,1", m.CSV())
}

func TestBuildMatrixFirstAppearanceOrder(t *testing.T) {
	m := BuildMatrix(&api.Diff{RequirementsByJob: []api.JobRequirements{
		{Label: "A", Requirements: []string{"Go", "Go", "Docker"}},
		{Label: "B", Requirements: []string{"Kafka", "Go"}},
		{Label: "C", Requirements: []string{"go"}},
	}})

	reqs := make([]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		reqs = append(reqs, r.Requirement)
	}
	assert.Equal(t, []string{"Go", "Docker", "Kafka", "go"}, reqs)
	assert.Equal(t, []int{1, 1, 0}, m.Rows[0].Presence, "exact match only")
}

func TestBuildMatrixWithoutDiff(t *testing.T) {
	assert.Nil(t, BuildMatrix(nil))
	assert.Nil(t, BuildMatrix(&api.Diff{}))

	var m *Matrix
	assert.Equal(t, "", m.CSV())
}

func TestCSVEscapingRoundTrip(t *testing.T) {
	tricky := []string{
		"Go, Kubernetes",
		"PL; EN",
		`6+ years "senior"`,
		"multi\nline",
		"plain",
	}

	m := BuildMatrix(&api.Diff{RequirementsByJob: []api.JobRequirements{
		{Label: `Firma "A", DevOps`, Requirements: tricky},
		{Label: "B", Requirements: tricky[:1]},
	}})

	records, err := ParseCSV(m.CSV())
	require.NoError(t, err)
	require.Len(t, records, len(tricky)+1)

	assert.Equal(t, `Firma "A", DevOps`, records[0][1])
	for i, req := range tricky {
		assert.Equal(t, req, records[i+1][0])
	}
	assert.Equal(t, []string{"Go, Kubernetes", "1", "1"}, records[1])
}

func TestEscapeField(t *testing.T) {
	assert.Equal(t, "plain", EscapeField("plain"))
	assert.Equal(t, `"a;b"`, EscapeField("a;b"))
	assert.Equal(t, `"say ""hi"""`, EscapeField(`say "hi"`))
}

func TestExporter(t *testing.T) {
	var copied string
	e := &Exporter{WriteClipboard: func(text string) error {
		copied = text
		return nil
	}}

	ok, err := e.Copy(nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, copied)

	dir := t.TempDir()
	path, err := e.Download(nil, dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	m := BuildMatrix(&api.Diff{RequirementsByJob: []api.JobRequirements{{Label: "A", Requirements: []string{"Go"}}}})

	ok, err = e.Copy(m)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Wymaganie,A\nGo,1", copied)

	path, err = e.Download(m, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ExportFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), utf8BOM))

	records, err := ParseCSV(string(data))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Wymaganie", "A"}, {"Go", "1"}}, records)
}

func TestExporterClipboardFailure(t *testing.T) {
	e := &Exporter{WriteClipboard: func(string) error { return errors.New("no display") }}
	m := BuildMatrix(&api.Diff{RequirementsByJob: []api.JobRequirements{{Label: "A"}}})

	ok, err := e.Copy(m)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFitBadge(t *testing.T) {
	assert.Equal(t, Badge{Text: NoCVText, Level: LevelNone}, FitBadge(nil))
	assert.Equal(t, Badge{Text: "70%", Level: LevelHigh}, FitBadge(ptr(70)))
	assert.Equal(t, Badge{Text: "40%", Level: LevelMedium}, FitBadge(ptr(40)))
	assert.Equal(t, Badge{Text: "39.5%", Level: LevelLow}, FitBadge(ptr(39.5)))
	assert.Equal(t, Badge{Text: "0%", Level: LevelLow}, FitBadge(ptr(0)))
}

type stubBackend struct {
	links  []string
	cv     *cvfile.File
	texts  []string
	labels []string
	calls  int
}

func (s *stubBackend) JDDiffFromLinks(_ context.Context, urls []string, cv *cvfile.File) (*api.Diff, error) {
	s.calls++
	s.links, s.cv = urls, cv
	return &api.Diff{}, nil
}

func (s *stubBackend) JDDiffFromText(_ context.Context, texts, labels []string) (*api.Diff, error) {
	s.calls++
	s.texts, s.labels = texts, labels
	return &api.Diff{}, nil
}

func TestComparerEnforcesBoundsBeforeRequest(t *testing.T) {
	backend := &stubBackend{}
	c := NewComparer(backend, nil, nil)

	_, err := c.CompareLinks(context.Background(), "https://a\n\n", nil)
	assert.Error(t, err)

	_, err = c.CompareText(context.Background(), "a\n---\nb\n---\nc\n---\nd\n---\ne\n---\nf", "")
	assert.Error(t, err)

	assert.Zero(t, backend.calls)
}

func TestComparerForwardsInput(t *testing.T) {
	backend := &stubBackend{}
	c := NewComparer(backend, nil, nil)

	_, err := c.CompareLinks(context.Background(), " https://a \nhttps://b\n", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, backend.links)
	assert.Nil(t, backend.cv)

	_, err = c.CompareText(context.Background(), "one\n---\ntwo\n---\nthree", "Firma A\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, backend.texts)
	assert.Equal(t, []string{"Firma A"}, backend.labels)
}

func TestUniqueOrder(t *testing.T) {
	diff := &api.Diff{
		UniqueByJob: map[string][]string{
			"zeta":      {"z"},
			"https://b": {"b"},
			"https://a": {"a"},
			"alpha":     {"x"},
		},
		PerJob: []api.JobFit{{URL: "https://b"}, {URL: "https://a"}},
	}

	assert.Equal(t, []string{"https://b", "https://a", "alpha", "zeta"}, UniqueOrder(diff))
	assert.Nil(t, UniqueOrder(nil))
}
