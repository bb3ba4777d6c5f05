package router

import (
	"encoding/json"
	"strings"
)

// Decision is the fully-populated result of parsing a structured model
// response. It covers both the intent-classification shape (intent,
// instruction) and the safety-judgment shape (unsafe, hint); keys missing
// from a given response are harmlessly defaulted so callers never branch on
// absent fields.
type Decision struct {
	Unsafe      bool
	Hint        string
	Intent      string
	Instruction string
}

// ParseDecision extracts a JSON object from free-form model output with
// field-level defaulting. It never fails: any malformed input yields the
// defaults, with Instruction carrying the raw input verbatim.
func ParseDecision(raw string) Decision {
	decision := Decision{
		Unsafe:      false,
		Hint:        "",
		Intent:      "chat",
		Instruction: raw,
	}

	// Strip whitespace and markdown backtick fencing
	txt := strings.TrimSpace(raw)
	txt = strings.Trim(txt, "`")
	txt = strings.TrimSpace(txt)

	// Locate the first { ... last } span (greedy, spans newlines)
	if span, ok := extractJSONSpan(txt); ok {
		txt = span
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(txt), &obj); err != nil {
		return decision
	}

	if v, ok := obj["unsafe"]; ok {
		decision.Unsafe = coerceBool(v)
	}
	if v, ok := obj["hint"].(string); ok {
		decision.Hint = v
	}
	if v, ok := obj["intent"].(string); ok {
		decision.Intent = v
	}
	if v, ok := obj["instruction"].(string); ok {
		decision.Instruction = v
	}

	return decision
}

// extractJSONSpan returns the substring from the first '{' to the last '}'.
func extractJSONSpan(s string) (string, bool) {
	startIdx := strings.Index(s, "{")
	endIdx := strings.LastIndex(s, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return "", false
	}
	return s[startIdx : endIdx+1], true
}

// coerceBool handles models that emit booleans as strings ("True", "false").
func coerceBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}
