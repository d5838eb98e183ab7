package render

import (
	"strconv"
	"strings"

	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/star"
)

const barCells = 20

// Star prints a coached STAR answer with one bar per score.
func (p *Printer) Star(res *api.StarResult) {
	if res == nil {
		return
	}

	p.heading("Twoja odpowiedź STAR")
	p.printf("%s\n", res.Answer)

	if len(res.Feedback) > 0 {
		p.heading("Feedback")
		p.list(res.Feedback, "")
	}

	if len(res.Tips) > 0 {
		p.heading("Jak podnieść ocenę")
		p.list(res.Tips, "")
	}

	if len(res.RedFlags) > 0 {
		p.heading("Ryzyka / braki")
		p.list(res.RedFlags, "")
	}

	p.heading("Ocena")
	p.printf("  %s  %s\n", p.style(res.Grade, styleHeading), p.style(strconv.Itoa(res.LengthChars)+" znaków", styleFaint))

	scores := star.SortedScores(res.Scores)
	nameWidth := 0
	for _, s := range scores {
		if runeLen(s.Name) > nameWidth {
			nameWidth = runeLen(s.Name)
		}
	}
	for _, s := range scores {
		p.printf("  %s%s %s %s/100\n", s.Name, pad(nameWidth-runeLen(s.Name)), Bar(s.Value), strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
}

// Bar draws a fixed width bar filled in proportion to score.
func Bar(score float64) string {
	filled := int(star.BarWidth(score)*barCells/100 + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled) + "]"
}
