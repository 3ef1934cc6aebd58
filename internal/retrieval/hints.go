package retrieval

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/talent-match/internal/types"
)

// skillsMarkerRe detects an explicit "skills: go, sql" marker in a
// free-form query. Everything after the first marker is treated as the
// skill list.
var skillsMarkerRe = regexp.MustCompile(`(?i)skills?\s*:\s*(.+)`)

// hintStopwords are query words that carry no skill signal.
var hintStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"for": true, "with": true, "in": true, "on": true, "of": true,
	"to": true, "me": true, "my": true, "any": true, "some": true,
	"find": true, "show": true, "looking": true, "want": true,
	"need": true, "please": true, "good": true, "new": true,
	"job": true, "jobs": true, "role": true, "roles": true,
	"position": true, "positions": true, "candidate": true,
	"candidates": true, "opportunity": true, "opportunities": true,
}

// ExtractSkillHints pulls ad-hoc skill tokens out of a free-form query.
// A "skills: ..." marker takes priority; without one the whole query is
// tokenized. Stopwords and tokens without any letter or digit are dropped.
// This is a best-effort natural-language heuristic, not a grammar.
func ExtractSkillHints(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	source := query
	if m := skillsMarkerRe.FindStringSubmatch(query); m != nil {
		source = m[1]
	}

	seen := make(map[string]bool)
	var hints []string
	for _, token := range tokenize(source) {
		if hintStopwords[token] || seen[token] {
			continue
		}
		seen[token] = true
		hints = append(hints, token)
	}
	return hints
}

// tokenize splits on commas and whitespace, lowercasing each token and
// trimming surrounding punctuation. Interior tech punctuation survives, so
// "c++", "c#" and "node.js" stay intact.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
		})
		if !hasAlphanumeric(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// filterByHints keeps records whose concatenated title/company/skills text
// contains every hint token. No hints means no filtering.
func filterByHints(records []types.Match, hints []string) []types.Match {
	if len(hints) == 0 {
		return records
	}

	out := make([]types.Match, 0, len(records))
	for _, record := range records {
		if matchesAllHints(record, hints) {
			out = append(out, record)
		}
	}
	return out
}

func matchesAllHints(m types.Match, hints []string) bool {
	haystack := strings.ToLower(strings.Join(append([]string{m.Title, m.Company}, m.Skills...), " "))
	for _, hint := range hints {
		if !strings.Contains(haystack, hint) {
			return false
		}
	}
	return true
}
