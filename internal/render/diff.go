package render

import (
	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/jddiff"
)

const (
	keywordPreview = 20
	noCVHint       = "Prześlij CV (tryb linków), aby zobaczyć braki."
)

// Diff prints a job description comparison.
func (p *Printer) Diff(diff *api.Diff) {
	if diff == nil {
		return
	}

	p.heading("Wspólne wymagania")
	p.list(diff.CommonRequirements, "brak")

	if keys := jddiff.UniqueOrder(diff); len(keys) > 0 {
		p.heading("Unikalne wymagania")
		for _, key := range keys {
			p.printf("  %s\n", p.style(key, styleHeading))
			for _, req := range diff.UniqueByJob[key] {
				p.printf("    • %s\n", req)
			}
		}
	}

	if len(diff.PerJob) > 0 {
		p.heading("Dopasowanie do ogłoszeń")
		for _, job := range diff.PerJob {
			p.printf("  %s  %s  (wymagań: %d)\n", p.badge(jddiff.FitBadge(job.FitScore)), job.Name(), job.TotalRequirements)
			if job.FitScore == nil {
				p.printf("    %s\n", p.style(noCVHint, styleFaint))
				continue
			}
			for _, missing := range job.TopMissing {
				p.printf("    brak: %s\n", missing)
			}
		}
	}

	if n := len(diff.JDKeywords); n > 0 {
		preview := diff.JDKeywords
		if n > keywordPreview {
			preview = preview[:keywordPreview]
		}
		p.heading("Słowa kluczowe")
		p.printf("  ")
		for i, kw := range preview {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s", kw)
		}
		if n > keywordPreview {
			p.printf(" %s", p.style("… (+"+itoa(n-keywordPreview)+")", styleFaint))
		}
		p.printf("\n")
	}
}

// Matrix prints the requirement matrix as aligned columns.
func (p *Printer) Matrix(m *jddiff.Matrix) {
	records := m.Records()
	if len(records) == 0 {
		return
	}

	widths := make([]int, len(records[0]))
	for _, record := range records {
		for i, cell := range record {
			if i < len(widths) && runeLen(cell) > widths[i] {
				widths[i] = runeLen(cell)
			}
		}
	}

	p.heading("Macierz wymagań")
	for _, record := range records {
		p.printf(" ")
		for i, cell := range record {
			p.printf(" %s%s", cell, pad(widths[i]-runeLen(cell)))
		}
		p.printf("\n")
	}
}

func (p *Printer) badge(b jddiff.Badge) string {
	text := "[" + b.Text + "]"
	switch b.Level {
	case jddiff.LevelHigh:
		return p.style(text, styleGood)
	case jddiff.LevelMedium:
		return p.style(text, styleWarn)
	case jddiff.LevelLow:
		return p.style(text, styleBad)
	default:
		return p.style(text, styleFaint)
	}
}
