package generator

import (
	"text2sql-api/internal/events"
	"text2sql-api/internal/metrics"
	"text2sql-api/internal/schema"
)

// Cache inserts or replaces one table in the catalog
func (g *Generator) Cache(table schema.TableMeta) error {
	if err := g.catalog.Cache(table); err != nil {
		return err
	}
	g.schemaChanged(events.SchemaOpCache, []string{table.TableName})
	return nil
}

// CacheAll caches tables in order, stopping at the first invalid one.
// Tables before it stay cached.
func (g *Generator) CacheAll(tables []schema.TableMeta) error {
	err := g.catalog.CacheAll(tables)
	if err != nil {
		metrics.SetCatalogTables(g.catalog.Len())
		return err
	}
	g.schemaChanged(events.SchemaOpCacheAll, tableNames(tables))
	return nil
}

// Clear empties the catalog
func (g *Generator) Clear() {
	g.catalog.Clear()
	g.schemaChanged(events.SchemaOpClear, nil)
}

// Refresh atomically replaces the catalog contents with tables
func (g *Generator) Refresh(tables []schema.TableMeta) error {
	if err := g.catalog.Refresh(tables); err != nil {
		return err
	}
	g.schemaChanged(events.SchemaOpRefresh, tableNames(tables))
	return nil
}

// RefreshSingle atomically replaces the catalog contents with table
func (g *Generator) RefreshSingle(table schema.TableMeta) error {
	if err := g.catalog.RefreshSingle(table); err != nil {
		return err
	}
	g.schemaChanged(events.SchemaOpRefreshSingle, []string{table.TableName})
	return nil
}

// Tables returns a snapshot of the catalog sorted by table name
func (g *Generator) Tables() []schema.TableMeta {
	return g.catalog.Snapshot()
}

// Len returns the number of cached tables without copying them
func (g *Generator) Len() int {
	return g.catalog.Len()
}

func (g *Generator) schemaChanged(operation string, tables []string) {
	count := g.catalog.Len()
	metrics.SetCatalogTables(count)
	g.publisher.Publish(events.TopicSchemaChanged, events.SchemaChanged{
		Event:      events.NewEvent(),
		Operation:  operation,
		Tables:     tables,
		TableCount: count,
	})
}

func tableNames(tables []schema.TableMeta) []string {
	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, table.TableName)
	}
	return names
}
