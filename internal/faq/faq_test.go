package faq

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/spigell/cv-analyzer/internal/analytics"
)

var sample = []byte(`[
	{"q": "Jak działa analiza?", "a": "Porównujemy CV z ogłoszeniem."},
	{"q": "Jakie formaty?", "a": "PDF oraz DOCX."},
	{"q": "Czy dane są bezpieczne?", "a": "Historia zostaje na Twoim urządzeniu."}
]`)

type recordingTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingTracker) Track(_ context.Context, e analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func mustParse(t *testing.T) []Item {
	t.Helper()
	items, err := Parse(sample)
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return items
}

func TestLoadEmbedded(t *testing.T) {
	items, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("embedded faq list is empty")
	}
	for i, item := range items {
		if item.ID != ID(i) || item.Question == "" || item.Answer == "" {
			t.Fatalf("bad item %d: %+v", i, item)
		}
	}
}

func TestFilter(t *testing.T) {
	items := mustParse(t)

	tests := []struct {
		query string
		ids   []string
	}{
		{query: "", ids: []string{"q0", "q1", "q2"}},
		{query: "   ", ids: []string{"q0", "q1", "q2"}},
		{query: "FORMATY", ids: []string{"q1"}},
		{query: "docx", ids: []string{"q1"}},
		{query: "urządzeniu", ids: []string{"q2"}},
		{query: "analiza? porównujemy", ids: []string{"q0"}},
		{query: "kubernetes", ids: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(items, tt.query)
			if len(got) != len(tt.ids) {
				t.Fatalf("expected %v, got %+v", tt.ids, got)
			}
			for i, item := range got {
				if item.ID != tt.ids[i] {
					t.Fatalf("position %d: expected %s, got %s", i, tt.ids[i], item.ID)
				}
			}
		})
	}
}

func TestFragmentID(t *testing.T) {
	for in, want := range map[string]string{
		"#q3":   "q3",
		"q3":    "q3",
		"%23q3": "q3",
		"":      "",
		"#":     "",
		"%zz":   "%zz",
	} {
		if got := FragmentID(in); got != want {
			t.Errorf("FragmentID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAccordionToggle(t *testing.T) {
	tracker := &recordingTracker{}
	events := analytics.NewDispatcher(tracker, nil)
	acc := NewAccordion(mustParse(t), events)

	frag, err := acc.Toggle("q1")
	if err != nil || frag != "#q1" {
		t.Fatalf("expected #q1, got %q (%v)", frag, err)
	}

	frag, _ = acc.Toggle("q2")
	if frag != "#q2" || !acc.IsOpen("q1") || !acc.IsOpen("q2") {
		t.Fatal("both items should be open")
	}

	frag, _ = acc.Toggle("q1")
	if frag != "#" || acc.IsOpen("q1") {
		t.Fatalf("expected q1 closed with #, got %q", frag)
	}

	if _, err := acc.Toggle("q9"); err == nil {
		t.Fatal("expected error for unknown item")
	}

	events.Wait()
	if len(tracker.events) != 3 {
		t.Fatalf("expected 3 toggle events, got %d", len(tracker.events))
	}
	last := tracker.events
	var closing analytics.Event
	for _, e := range last {
		if e.Props["id"] == "q1" && e.Props["open"] == "false" {
			closing = e
		}
	}
	if closing.Name != analytics.EventFAQToggle || closing.Props["question"] != "Jakie formaty?" {
		t.Fatalf("missing close event: %+v", last)
	}
}

func TestAccordionViewDeepLink(t *testing.T) {
	tracker := &recordingTracker{}
	events := analytics.NewDispatcher(tracker, nil)
	items := mustParse(t)
	acc := NewAccordion(items, events)

	if id := acc.View("#q2"); id != "q2" || !acc.IsOpen("q2") {
		t.Fatalf("deep link did not open q2: %q", id)
	}
	if Index(items, "q2") != 2 {
		t.Fatal("unexpected index for q2")
	}
	if id := acc.View("#q7"); id != "" {
		t.Fatalf("unknown fragment opened %q", id)
	}

	events.Wait()
	if len(tracker.events) != 2 || tracker.events[0].Name != analytics.EventFAQView {
		t.Fatalf("expected two view events, got %+v", tracker.events)
	}
}

func TestAccordionWithoutAnalytics(t *testing.T) {
	acc := NewAccordion(mustParse(t), nil)
	if _, err := acc.Toggle("q0"); err != nil {
		t.Fatalf("toggle without dispatcher: %v", err)
	}
}

func TestJSONLD(t *testing.T) {
	data, err := JSONLD(mustParse(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["@context"] != "https://schema.org" || doc["@type"] != "FAQPage" {
		t.Fatalf("unexpected header: %v", doc)
	}

	entities := doc["mainEntity"].([]any)
	first := entities[0].(map[string]any)
	answer := first["acceptedAnswer"].(map[string]any)
	if len(entities) != 3 || first["name"] != "Jak działa analiza?" || answer["@type"] != "Answer" {
		t.Fatalf("unexpected entities: %v", entities)
	}
}
