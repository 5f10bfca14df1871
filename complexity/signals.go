package complexity

import (
	"strings"
	"unicode"
)

// Signals are the raw measurements taken from a task description.
type Signals struct {
	// Words is the number of word tokens.
	Words int `json:"words" yaml:"words"`

	// Clauses counts conjunctions, commas, semicolons and extra lines.
	Clauses int `json:"clauses" yaml:"clauses"`

	// SimpleKeywords, StandardKeywords and ComplexKeywords hold the distinct
	// keywords matched from each set, in order of first appearance.
	SimpleKeywords   []string `json:"simple_keywords,omitempty" yaml:"simple_keywords,omitempty"`
	StandardKeywords []string `json:"standard_keywords,omitempty" yaml:"standard_keywords,omitempty"`
	ComplexKeywords  []string `json:"complex_keywords,omitempty" yaml:"complex_keywords,omitempty"`
}

// Empty reports whether the task contained no words at all.
func (s Signals) Empty() bool {
	return s.Words == 0
}

// Decisive reports whether any keyword or structural signal fired.
// Without one, the analyzer falls back to the configured default model.
func (s Signals) Decisive() bool {
	return s.Clauses > 0 ||
		len(s.SimpleKeywords) > 0 ||
		len(s.StandardKeywords) > 0 ||
		len(s.ComplexKeywords) > 0
}

// ExtractSignals measures task. It is total over all strings.
func ExtractSignals(task string) Signals {
	var s Signals

	toks := tokenize(task)
	s.Words = len(toks)
	if s.Words == 0 {
		return s
	}

	seen := make(map[string]bool)
	for _, tok := range toks {
		if isClauseMarker(tok) {
			s.Clauses++
			continue
		}
		if kw, ok := ComplexKeywords.Match(tok); ok {
			if !seen[kw] {
				seen[kw] = true
				s.ComplexKeywords = append(s.ComplexKeywords, kw)
			}
			continue
		}
		if kw, ok := StandardKeywords.Match(tok); ok {
			if !seen[kw] {
				seen[kw] = true
				s.StandardKeywords = append(s.StandardKeywords, kw)
			}
			continue
		}
		if kw, ok := SimpleKeywords.Match(tok); ok {
			if !seen[kw] {
				seen[kw] = true
				s.SimpleKeywords = append(s.SimpleKeywords, kw)
			}
		}
	}

	s.Clauses += strings.Count(task, ",") + strings.Count(task, ";")
	if lines := nonEmptyLines(task); lines > 1 {
		s.Clauses += lines - 1
	}

	return s
}

// tokenize lowercases text and splits it into words. Hyphens inside a
// word are kept so "multi-region" stays one token.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	toks := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if f != "" {
			toks = append(toks, f)
		}
	}
	return toks
}

func nonEmptyLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
