package render

import (
	"strconv"

	"github.com/spigell/cv-analyzer/internal/api"
)

// Analysis prints an analysis result.
func (p *Printer) Analysis(res *api.AnalysisResult) {
	if res == nil {
		return
	}

	p.printf("%s %s\n", p.style("Dopasowanie:", styleHeading), p.matchPct(res.DopasowanieProcentowe))

	if res.WarningMismatch {
		p.mismatch(res.Meta)
	}

	if res.Podsumowanie != "" {
		p.heading("Podsumowanie")
		p.printf("  %s\n", res.Podsumowanie)
	}

	p.heading("Mocne strony")
	p.list(res.Dopasowanie.MocneStrony, "brak")

	p.heading("Obszary do poprawy")
	p.list(res.Dopasowanie.ObszaryDoPoprawy, "brak")

	if res.Dopasowanie.RyzykoNiedopasowania != "" {
		p.heading("Ryzyko niedopasowania")
		p.printf("  %s\n", res.Dopasowanie.RyzykoNiedopasowania)
	}

	p.heading("Pytania rekrutacyjne: kompetencje miękkie")
	p.list(res.Pytania.KompetencjeMiekkie, "brak")

	p.heading("Pytania rekrutacyjne: kompetencje twarde")
	p.list(res.Pytania.KompetencjeTwarde, "brak")
}

func (p *Printer) matchPct(v float64) string {
	text := strconv.FormatFloat(v, 'f', -1, 64) + "%"
	switch {
	case v >= 70:
		return p.style(text, styleGood)
	case v >= 40:
		return p.style(text, styleWarn)
	default:
		return p.style(text, styleBad)
	}
}

func (p *Printer) mismatch(meta *api.Meta) {
	p.printf("\n%s\n", p.style("⚠ Wykryto rozbieżność", styleWarn))
	if meta == nil {
		return
	}
	p.printf("  Branża CV: %s, branża ogłoszenia: %s\n", orDash(meta.IndustryCV), orDash(meta.IndustryJD))
	if meta.RoleJD != "" {
		p.printf("  Rola w ogłoszeniu: %s\n", meta.RoleJD)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
