package complexity

import (
	"slices"
	"strings"
)

// KeywordSet is a named, read-only list of keywords.
// A keyword matches a token that is the keyword itself or one of its
// regular inflections, so "architect" matches "architecture", "bug"
// matches "bugs" and "plan" matches "planning" but not "planet".
type KeywordSet struct {
	name  string
	words []string
}

func newKeywordSet(name string, words ...string) KeywordSet {
	return KeywordSet{name: name, words: words}
}

// Name returns the set's name.
func (k KeywordSet) Name() string {
	return k.name
}

// Words returns a copy of the keywords.
func (k KeywordSet) Words() []string {
	return slices.Clone(k.words)
}

// Match returns the keyword that matches token, if any.
func (k KeywordSet) Match(token string) (string, bool) {
	for _, w := range k.words {
		if inflectionOf(token, w) {
			return w, true
		}
	}
	return "", false
}

// wordSuffixes may follow a keyword unchanged.
var wordSuffixes = []string{
	"", "s", "es", "d", "ed", "ing", "er", "ers", "ly", "al",
	"ment", "ments", "ure", "ures", "ural", "ion", "ions", "ation", "ations",
}

// stemSuffixes may follow a keyword whose final e is dropped
// ("create" -> "creating") or whose final consonant is doubled
// ("plan" -> "planning").
var stemSuffixes = []string{"ing", "ed", "er", "ers", "ion", "ions", "ation", "ations"}

// inflectionOf reports whether token is kw or an inflected form of it.
func inflectionOf(token, kw string) bool {
	if rest, ok := strings.CutPrefix(token, kw); ok && slices.Contains(wordSuffixes, rest) {
		return true
	}
	if len(kw) < 2 || len(token) <= len(kw) {
		return false
	}

	stem, last := kw[:len(kw)-1], kw[len(kw)-1]
	switch {
	case last == 'e':
		rest, ok := strings.CutPrefix(token, stem)
		return ok && slices.Contains(stemSuffixes, rest)
	case last == 'y':
		rest, ok := strings.CutPrefix(token, stem)
		return ok && (rest == "ies" || rest == "ied")
	case !strings.ContainsRune("aeiouwx", rune(last)):
		rest, ok := strings.CutPrefix(token, kw+string(last))
		return ok && slices.Contains(stemSuffixes, rest)
	}
	return false
}

// The three keyword sets are prefix-disjoint: no keyword in one set is a
// prefix of a keyword in another.
var (
	// SimpleKeywords suggest enumeration, lookup, or a small mechanical edit.
	SimpleKeywords = newKeywordSet("simple",
		"list", "count", "extract", "find", "show", "print", "display",
		"get", "fetch", "read", "rename", "format", "copy", "move",
		"delete", "remove", "fix", "typo", "quick", "simple", "basic",
		"trivial", "small", "minor", "lookup", "look", "check", "convert",
		"sort", "tidy", "echo",
	)

	// StandardKeywords suggest ordinary engineering work: building,
	// reviewing, or investigating a bounded piece of a system.
	StandardKeywords = newKeywordSet("standard",
		"analyze", "analyse", "analysis", "implement", "create", "test",
		"debug", "refactor", "review", "research", "integrate", "integration",
		"bug", "build", "write", "update", "upgrade", "optimize", "optimise",
		"improve", "validate", "validation", "authentication", "authorization",
		"security", "secure", "deploy", "investigate", "explain", "compare",
		"document", "api", "database", "endpoint", "feature", "parse",
		"module", "component", "query", "performance", "automate",
		"configure", "setup",
	)

	// ComplexKeywords suggest design, architecture, or multi-step planning.
	ComplexKeywords = newKeywordSet("complex",
		"architect", "design", "redesign", "scalable", "scalability",
		"microservice", "distributed", "migration", "migrate", "strategy",
		"strategic", "comprehensive", "multi-region", "multi-tenant",
		"multi-step", "infrastructure", "orchestrate", "orchestration",
		"plan", "roadmap", "concurrency", "concurrent", "fault-tolerant",
		"resilient", "overhaul", "end-to-end", "enterprise", "framework",
		"system-wide", "trade-off", "tradeoff", "platform", "ecosystem",
		"pipeline", "algorithm", "consensus", "high-availability",
	)
)

// ClauseMarkers are whole words that join the parts of a multi-part task.
// Unlike keywords they must match a token exactly.
var ClauseMarkers = []string{
	"and", "then", "also", "plus", "after", "afterwards", "before",
	"while", "including", "followed", "additionally", "finally", "next",
}

func isClauseMarker(token string) bool {
	return slices.Contains(ClauseMarkers, token)
}
