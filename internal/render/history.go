package render

import (
	"strconv"

	"github.com/spigell/cv-analyzer/internal/history"
)

const dateLayout = "2006-01-02 15:04"

// HistoryLine is the one-line summary of an entry, also used by the picker.
func HistoryLine(i int, e history.Entry) string {
	pct := "-"
	if e.Results != nil {
		pct = strconv.FormatFloat(e.Results.DopasowanieProcentowe, 'f', -1, 64) + "%"
	}
	return strconv.Itoa(i+1) + ". " + e.Date.Local().Format(dateLayout) + "  " + e.Plan + "  " + orDash(e.SelectedIndustry) + "  " + pct
}

// History prints entries newest first.
func (p *Printer) History(entries []history.Entry) {
	if len(entries) == 0 {
		p.printf("%s\n", p.style("Historia jest pusta.", styleFaint))
		return
	}
	for i, e := range entries {
		p.printf("%s\n", HistoryLine(i, e))
	}
}

// HistoryEntry prints one archived analysis.
func (p *Printer) HistoryEntry(e history.Entry) {
	p.printf("%s  plan: %s  branża: %s\n\n", p.style(e.Date.Local().Format(dateLayout), styleHeading), e.Plan, orDash(e.SelectedIndustry))
	p.Analysis(e.Results)
}
