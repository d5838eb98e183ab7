package render

import "github.com/spigell/cv-analyzer/internal/faq"

// FAQ prints items, expanding the answers of open ones.
func (p *Printer) FAQ(items []faq.Item, isOpen func(id string) bool, query string) {
	if len(items) == 0 {
		p.printf("Brak wyników dla: %s\n", p.style(query, styleHeading))
		return
	}

	for _, item := range items {
		open := isOpen != nil && isOpen(item.ID)
		p.printf("%s %s %s\n", p.style(FAQMarker(open), styleFaint), p.style(item.ID, styleFaint), p.style(item.Question, styleHeading))
		if open {
			p.printf("     %s\n", item.Answer)
		}
	}
}

// FAQMarker is the expand indicator of an item.
func FAQMarker(open bool) string {
	if open {
		return "–"
	}
	return "+"
}
