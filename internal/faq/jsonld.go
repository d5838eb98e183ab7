package faq

import "encoding/json"

type jsonLDAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type jsonLDQuestion struct {
	Type           string       `json:"@type"`
	Name           string       `json:"name"`
	AcceptedAnswer jsonLDAnswer `json:"acceptedAnswer"`
}

type jsonLDPage struct {
	Context    string           `json:"@context"`
	Type       string           `json:"@type"`
	MainEntity []jsonLDQuestion `json:"mainEntity"`
}

// JSONLD renders the schema.org FAQPage document for items.
func JSONLD(items []Item) ([]byte, error) {
	page := jsonLDPage{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: make([]jsonLDQuestion, 0, len(items)),
	}
	for _, item := range items {
		page.MainEntity = append(page.MainEntity, jsonLDQuestion{
			Type:           "Question",
			Name:           item.Question,
			AcceptedAnswer: jsonLDAnswer{Type: "Answer", Text: item.Answer},
		})
	}
	return json.MarshalIndent(page, "", "  ")
}
