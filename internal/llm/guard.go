package llm

import (
	"strings"
	"unicode"
)

// CheckSelectStatement enforces the result contract shared by every strategy:
// exactly one statement, starting with SELECT. It runs after extraction inside
// each attempt, so a violation is retried like any other ExtractionError.
func CheckSelectStatement(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return NewExtractionError("empty SQL statement", nil)
	}
	if !strings.EqualFold(firstKeyword(sql), "SELECT") {
		return NewExtractionError("only SELECT statements are allowed", nil)
	}
	if CountStatements(sql) > 1 {
		return NewExtractionError("multiple statements are not allowed", nil)
	}
	return nil
}

// CountStatements counts non-empty statements separated by semicolons,
// ignoring semicolons inside quotes and comments.
func CountStatements(sql string) int {
	count := 0
	for _, stmt := range strings.Split(stripQuoted(sql), ";") {
		if strings.TrimSpace(stmt) != "" {
			count++
		}
	}
	return count
}

// firstKeyword returns the first word of sql after leading whitespace,
// comments and opening parentheses.
func firstKeyword(sql string) string {
	s := strings.TrimLeftFunc(stripQuoted(sql), func(r rune) bool {
		return unicode.IsSpace(r) || r == '('
	})
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || r == '_')
	})
	if end == -1 {
		return s
	}
	return s[:end]
}

// stripQuoted blanks out string literals, quoted identifiers and comments
// so that keyword and separator scans only see SQL structure.
func stripQuoted(sql string) string {
	var sb strings.Builder
	sb.Grow(len(sql))

	runes := []rune(sql)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'' || r == '"' || r == '`':
			quote := r
			sb.WriteRune(' ')
			for i++; i < len(runes); i++ {
				if runes[i] == quote {
					if i+1 < len(runes) && runes[i+1] == quote {
						i++
						continue
					}
					break
				}
			}
			sb.WriteRune(' ')
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			sb.WriteRune('\n')
		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			for i += 2; i < len(runes); i++ {
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					i++
					break
				}
			}
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
