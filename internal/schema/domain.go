package schema

import (
	"strings"

	"text2sql-api/internal/common"
)

// ColumnMeta describes one table column for prompt rendering
type ColumnMeta struct {
	Name        string `json:"name" mapstructure:"name"`
	Type        string `json:"type" mapstructure:"type"`
	Description string `json:"description" mapstructure:"description"`
}

// TableMeta describes a table; TableName is its identity in the catalog
type TableMeta struct {
	TableName   string       `json:"table_name" mapstructure:"table_name"`
	Description string       `json:"description" mapstructure:"description"`
	Columns     []ColumnMeta `json:"columns" mapstructure:"columns"`
}

// Validate checks that the table can be cached
func (t TableMeta) Validate() error {
	if strings.TrimSpace(t.TableName) == "" {
		return common.NewInvalidArgumentError("table_name", "table name must not be empty")
	}
	return nil
}

// Clone returns a copy that shares no column storage with t
func (t TableMeta) Clone() TableMeta {
	clone := t
	if t.Columns != nil {
		clone.Columns = make([]ColumnMeta, len(t.Columns))
		copy(clone.Columns, t.Columns)
	}
	return clone
}

// ColumnNames returns the column names in declaration order
func (t TableMeta) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}
	return names
}
