package llm

import (
	"regexp"
	"strings"
)

// StrictDenylist extends DefaultDenylist with DDL, privilege and procedure keywords
var StrictDenylist = []string{"ALTER", "CREATE", "GRANT", "REVOKE", "MERGE", "REPLACE", "CALL", "EXEC"}

// Keywords that are also read-only functions, e.g. MySQL REPLACE(str, from, to)
var functionKeywords = map[string]bool{"REPLACE": true}

// StrictExtractor decorates another Extractor with stricter checks:
// a single statement only, a SELECT prefix, and an extended denylist applied
// outside string literals and comments.
type StrictExtractor struct {
	base     Extractor
	denylist *regexp.Regexp
}

// NewStrictExtractor wraps base. extraKeywords are added to StrictDenylist,
// which lets callers tune the denylist per dialect.
func NewStrictExtractor(base Extractor, extraKeywords ...string) *StrictExtractor {
	if base == nil {
		base = NewDefaultExtractor()
	}
	keywords := append(append([]string{}, StrictDenylist...), extraKeywords...)
	return &StrictExtractor{
		base:     base,
		denylist: denylistPattern(keywords),
	}
}

// Extract implements the Extractor interface
func (e *StrictExtractor) Extract(raw string) (string, error) {
	sql, err := e.base.Extract(raw)
	if err != nil {
		return "", err
	}

	if kw := e.deniedKeyword(stripQuoted(sql)); kw != "" {
		return "", NewExtractionError("dangerous operation detected: "+kw, nil)
	}

	if CountStatements(sql) > 1 {
		return "", NewExtractionError("multiple statements are not allowed", nil)
	}

	if !strings.EqualFold(firstKeyword(sql), "SELECT") {
		return "", NewExtractionError("only SELECT queries are allowed", nil)
	}

	return sql, nil
}

// deniedKeyword returns the first denylisted keyword in sql that is not a function call
func (e *StrictExtractor) deniedKeyword(sql string) string {
	for _, loc := range e.denylist.FindAllStringIndex(sql, -1) {
		kw := strings.ToUpper(sql[loc[0]:loc[1]])
		if functionKeywords[kw] && strings.HasPrefix(strings.TrimLeft(sql[loc[1]:], " \t\r\n"), "(") {
			continue
		}
		return kw
	}
	return ""
}
