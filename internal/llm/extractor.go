package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DefaultDenylist holds the mutating keywords rejected by every extractor
var DefaultDenylist = []string{"DROP", "DELETE", "INSERT", "UPDATE", "TRUNCATE"}

var (
	jsonBlockPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	sqlBlockPattern  = regexp.MustCompile("(?s)```sql\\s*(.*?)\\s*```")
	anyBlockPattern  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

	defaultDenylistPattern = denylistPattern(DefaultDenylist)
)

// denylistPattern builds a case-insensitive whole-word matcher for keywords
func denylistPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// DefaultExtractor reads {"sql": "..."} from the first ```json block, falling back to the first ```sql block
type DefaultExtractor struct{}

// NewDefaultExtractor creates the default extraction strategy
func NewDefaultExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// Extract implements the Extractor interface
func (e *DefaultExtractor) Extract(raw string) (string, error) {
	var block string
	found := false
	for _, pattern := range []*regexp.Regexp{jsonBlockPattern, sqlBlockPattern} {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			block = m[1]
			found = true
			break
		}
	}
	if !found {
		return "", NewExtractionError("no code block found", nil)
	}

	block = strings.TrimSpace(block)
	if !strings.HasPrefix(block, "{") {
		return "", NewExtractionError("non-standard JSON format", nil)
	}

	var payload struct {
		SQL *string `json:"sql"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return "", NewExtractionError("failed to parse JSON block", err)
	}
	if payload.SQL == nil {
		return "", NewExtractionError("JSON block has no \"sql\" field", nil)
	}

	if err := CheckDenylist(*payload.SQL); err != nil {
		return "", err
	}

	return *payload.SQL, nil
}

// CheckDenylist fails with an ExtractionError when sql contains a default denylisted keyword
func CheckDenylist(sql string) error {
	if kw := defaultDenylistPattern.FindString(sql); kw != "" {
		return NewExtractionError("dangerous operation detected: "+strings.ToUpper(kw), nil)
	}
	return nil
}

// PlainTextExtractor accepts bare SQL, optionally inside a fenced block or
// behind a "SQL:" label, without JSON wrapping.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates the plain-text extraction strategy
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract implements the Extractor interface
func (e *PlainTextExtractor) Extract(raw string) (string, error) {
	text := raw
	if m := sqlBlockPattern.FindStringSubmatch(raw); m != nil {
		text = m[1]
	} else if m := anyBlockPattern.FindStringSubmatch(raw); m != nil {
		text = m[1]
	}

	text = strings.TrimSpace(text)
	for _, prefix := range []string{"SQL:", "sql:", "Sql:"} {
		text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}

	if text == "" {
		return "", NewExtractionError("empty model reply", nil)
	}

	// A JSON payload is still honoured so the default prompt keeps working.
	if strings.HasPrefix(text, "{") {
		var payload struct {
			SQL string `json:"sql"`
		}
		if err := json.Unmarshal([]byte(text), &payload); err == nil && payload.SQL != "" {
			text = payload.SQL
		}
	}

	if err := CheckDenylist(text); err != nil {
		return "", err
	}
	return text, nil
}

// Extractor names accepted by NewExtractor
const (
	ExtractorDefault = "default"
	ExtractorPlain   = "plain"
	ExtractorStrict  = "strict"
)

// NewExtractor returns the extraction strategy registered under name
func NewExtractor(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ExtractorDefault:
		return NewDefaultExtractor(), nil
	case ExtractorPlain:
		return NewPlainTextExtractor(), nil
	case ExtractorStrict:
		return NewStrictExtractor(NewDefaultExtractor()), nil
	default:
		return nil, NewConfigurationError("extractor", "unknown extractor: "+name, "use one of default, plain, strict")
	}
}
