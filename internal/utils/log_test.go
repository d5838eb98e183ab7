package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect int
	}{
		{input: "", expect: 0},
		{input: "   \n\t ", expect: 0},
		{input: "one", expect: 1},
		{input: "  one two\nthree\tfour  ", expect: 4},
	}

	for _, tt := range tests {
		if got := CountWords(tt.input); got != tt.expect {
			t.Fatalf("CountWords(%q): expected %d, got %d", tt.input, tt.expect, got)
		}
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	got := SplitLines(" https://a.example \r\n\n  \nhttps://b.example\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(got), got)
	}
	if got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected lines: %v", got)
	}

	if empty := SplitLines("\n \n"); len(empty) != 0 {
		t.Fatalf("expected no lines, got %v", empty)
	}
}
