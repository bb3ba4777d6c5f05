package router

import (
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantUnsafe      bool
		wantHint        string
		wantIntent      string
		wantInstruction string
	}{
		{
			name:            "well-formed classifier response",
			raw:             `{"intent": "new_story", "instruction": "a brave knight"}`,
			wantUnsafe:      false,
			wantHint:        "",
			wantIntent:      "new_story",
			wantInstruction: "a brave knight",
		},
		{
			name:            "well-formed judge response",
			raw:             `{"unsafe": true, "hint": "make it shorter"}`,
			wantUnsafe:      true,
			wantHint:        "make it shorter",
			wantIntent:      "chat",
			wantInstruction: `{"unsafe": true, "hint": "make it shorter"}`,
		},
		{
			name:            "all four fields round-trip unchanged",
			raw:             `{"unsafe": false, "hint": "x", "intent": "chat", "instruction": "y"}`,
			wantUnsafe:      false,
			wantHint:        "x",
			wantIntent:      "chat",
			wantInstruction: "y",
		},
		{
			name:            "not json at all",
			raw:             "not json at all",
			wantUnsafe:      false,
			wantHint:        "",
			wantIntent:      "chat",
			wantInstruction: "not json at all",
		},
		{
			name:            "markdown fenced json",
			raw:             "```json\n{\"intent\": \"refine\", \"instruction\": \"add a dragon\"}\n```",
			wantUnsafe:      false,
			wantHint:        "",
			wantIntent:      "refine",
			wantInstruction: "add a dragon",
		},
		{
			name:            "json embedded in prose",
			raw:             "Sure! Here is the result:\n{\"unsafe\": false, \"hint\": \"add a flower\"}\nHope that helps.",
			wantUnsafe:      false,
			wantHint:        "add a flower",
			wantIntent:      "chat",
			wantInstruction: "Sure! Here is the result:\n{\"unsafe\": false, \"hint\": \"add a flower\"}\nHope that helps.",
		},
		{
			name:            "string boolean coercion",
			raw:             `{"unsafe": "True", "hint": ""}`,
			wantUnsafe:      true,
			wantHint:        "",
			wantIntent:      "chat",
			wantInstruction: `{"unsafe": "True", "hint": ""}`,
		},
		{
			name:            "string boolean false stays false",
			raw:             `{"unsafe": "nope"}`,
			wantUnsafe:      false,
			wantHint:        "",
			wantIntent:      "chat",
			wantInstruction: `{"unsafe": "nope"}`,
		},
		{
			name:            "empty input",
			raw:             "",
			wantUnsafe:      false,
			wantHint:        "",
			wantIntent:      "chat",
			wantInstruction: "",
		},
		{
			name:            "truncated json falls back to defaults",
			raw:             `{"unsafe": true, "hint": "make`,
			wantUnsafe:      false,
			wantHint:        "",
			wantIntent:      "chat",
			wantInstruction: `{"unsafe": true, "hint": "make`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecision(tt.raw)

			if got.Unsafe != tt.wantUnsafe {
				t.Errorf("Unsafe = %v, want %v", got.Unsafe, tt.wantUnsafe)
			}
			if got.Hint != tt.wantHint {
				t.Errorf("Hint = %q, want %q", got.Hint, tt.wantHint)
			}
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Instruction != tt.wantInstruction {
				t.Errorf("Instruction = %q, want %q", got.Instruction, tt.wantInstruction)
			}
		})
	}
}

func TestParseDecisionIdempotent(t *testing.T) {
	raw := `{"unsafe": false, "hint": "x", "intent": "chat", "instruction": "y"}`

	first := ParseDecision(raw)
	second := ParseDecision(raw)

	if first != second {
		t.Errorf("repeated parse differs: %+v vs %+v", first, second)
	}
}

func TestExtractJSONSpan(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{`prefix {"a":1} suffix`, `{"a":1}`, true},
		{"multi\n{\"a\":\n1}\nline", "{\"a\":\n1}", true},
		{"no braces here", "", false},
		{"} reversed {", "", false},
	}

	for _, tt := range tests {
		got, ok := extractJSONSpan(tt.in)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("extractJSONSpan(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOk)
		}
	}
}
