// Package prompt renders the instruction prompt sent to the model.
package prompt

import (
	"fmt"
	"strings"

	"text2sql-api/internal/common"
	"text2sql-api/internal/schema"
)

// DefaultTemplate takes, in order: dialect, schema block, question.
const DefaultTemplate = `You are a professional %s DBA. Write a SQL query for the user's question using the database schema below.
Database schema:
%s
User question: %s
Requirements:
1. Use syntax supported by the database above.
2. Generate read-only SELECT statements only.
3. Include the necessary column explanations and justify each selected column against the question.
4. Use only the tables the question needs.
5. Generate exactly one SQL statement.
6. Return the result as: {"sql": "<generated SQL>"}`

// Builder renders prompts from a fixed template. It holds no mutable state.
type Builder struct {
	template string
}

// NewBuilder creates a Builder using DefaultTemplate
func NewBuilder() *Builder {
	return &Builder{template: DefaultTemplate}
}

// NewBuilderWithTemplate creates a Builder with a custom template.
// The template must contain three %s verbs: dialect, schema block, question.
func NewBuilderWithTemplate(template string) (*Builder, error) {
	if strings.Count(template, "%s") != 3 {
		return nil, common.NewInvalidArgumentError("template", "template must contain exactly three %s placeholders")
	}
	return &Builder{template: template}, nil
}

// Build renders the prompt. Question and descriptions are inserted verbatim.
func (b *Builder) Build(question string, tables []schema.TableMeta, dialect string) string {
	if dialect == "" {
		dialect = common.DefaultDialect
	}
	return fmt.Sprintf(b.template, dialect, DescribeTables(tables), question)
}

// DescribeTables renders the schema block, preserving table and column order
func DescribeTables(tables []schema.TableMeta) string {
	var sb strings.Builder
	for _, table := range tables {
		sb.WriteString("[Table: ")
		sb.WriteString(table.TableName)
		sb.WriteString(", Description: ")
		sb.WriteString(table.Description)
		sb.WriteString("\n")
		for _, col := range table.Columns {
			sb.WriteString("- Column: ")
			sb.WriteString(col.Name)
			sb.WriteString(", Type: ")
			sb.WriteString(col.Type)
			sb.WriteString(", Description: ")
			sb.WriteString(col.Description)
			sb.WriteString("\n")
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
