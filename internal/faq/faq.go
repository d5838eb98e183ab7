// Package faq serves the embedded question list with per-item expand state.
package faq

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spigell/cv-analyzer/internal/analytics"
)

//go:embed faqs.json
var embedded []byte

// Item is one question with its positional id (q0, q1, ...).
type Item struct {
	ID       string `json:"-"`
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// ID returns the identifier of the item at idx.
func ID(idx int) string {
	return "q" + strconv.Itoa(idx)
}

// Load returns the embedded items.
func Load() ([]Item, error) {
	return Parse(embedded)
}

// Parse decodes a JSON list of {q, a} pairs and assigns ids by position.
func Parse(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode faq list: %w", err)
	}
	for i := range items {
		items[i].ID = ID(i)
	}
	return items, nil
}

// Filter keeps the items whose question or answer contains query, ignoring case.
// A blank query keeps everything.
func Filter(items []Item, query string) []Item {
	if strings.TrimSpace(query) == "" {
		return items
	}

	q := strings.ToLower(query)
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Question+" "+item.Answer), q) {
			out = append(out, item)
		}
	}
	return out
}

// FragmentID extracts an item id from a URL fragment such as "#q3" or "%23q3".
func FragmentID(fragment string) string {
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}
	return strings.TrimPrefix(strings.TrimSpace(fragment), "#")
}

// Accordion tracks which items are expanded. Any number may be open.
type Accordion struct {
	items  []Item
	open   map[string]bool
	events *analytics.Dispatcher
}

func NewAccordion(items []Item, events *analytics.Dispatcher) *Accordion {
	return &Accordion{items: items, open: make(map[string]bool), events: events}
}

func (a *Accordion) Items() []Item {
	return a.items
}

// View reports the page view and opens the item named by fragment, if any.
// It returns the id of the opened item or "".
func (a *Accordion) View(fragment string) string {
	a.events.Fire(analytics.EventFAQView, nil)

	id := FragmentID(fragment)
	if _, ok := a.find(id); !ok {
		return ""
	}
	a.open[id] = true
	return id
}

func (a *Accordion) IsOpen(id string) bool {
	return a.open[id]
}

// Toggle flips the item and returns the fragment reflecting its new state.
func (a *Accordion) Toggle(id string) (string, error) {
	item, ok := a.find(id)
	if !ok {
		return "", fmt.Errorf("unknown faq item %q", id)
	}

	next := !a.open[id]
	a.open[id] = next

	a.events.Fire(analytics.EventFAQToggle, map[string]any{
		"id":       id,
		"question": item.Question,
		"open":     strconv.FormatBool(next),
	})

	if next {
		return "#" + id, nil
	}
	return "#", nil
}

// Index returns the position of id in items or 0 when absent.
func Index(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return 0
}

func (a *Accordion) find(id string) (Item, bool) {
	for _, item := range a.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
