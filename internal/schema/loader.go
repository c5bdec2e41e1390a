package schema

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFile reads table definitions from a YAML or JSON file with a top-level
// "tables" list. The format is picked from the file extension.
func LoadFile(path string) ([]TableMeta, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var tables []TableMeta
	if err := v.UnmarshalKey("tables", &tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables from %s: %w", path, err)
	}

	for i, table := range tables {
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("schema file %s, table at index %d: %w", path, i, err)
		}
	}

	return tables, nil
}
