package schema

import (
	"fmt"
	"sort"
	"sync"

	"text2sql-api/internal/common"
)

// Catalog is a concurrency-safe registry of table metadata keyed by table name.
//
// Every mutation holds the write lock for its full duration, so a concurrent
// Snapshot observes either the state before or after a Refresh, never a mix.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]TableMeta
}

// NewCatalog creates a catalog pre-seeded with tables
func NewCatalog(tables ...TableMeta) (*Catalog, error) {
	c := &Catalog{tables: make(map[string]TableMeta)}
	if err := c.CacheAll(tables); err != nil {
		return nil, err
	}
	return c, nil
}

// Cache inserts or replaces the entry keyed by table.TableName
func (c *Catalog) Cache(table TableMeta) error {
	if err := table.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables[table.TableName] = table.Clone()
	return nil
}

// CacheAll caches tables in order. It stops at the first invalid table;
// tables cached before it stay cached.
func (c *Catalog) CacheAll(tables []TableMeta) error {
	for i, table := range tables {
		if err := c.Cache(table); err != nil {
			return fmt.Errorf("table at index %d: %w", i, err)
		}
	}
	return nil
}

// Clear removes all entries
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables = make(map[string]TableMeta)
}

// Refresh replaces the whole catalog with tables.
// If any table is invalid the catalog is left unchanged.
func (c *Catalog) Refresh(tables []TableMeta) error {
	if len(tables) == 0 {
		return common.NewInvalidArgumentError("tables", "refresh requires at least one table")
	}

	next := make(map[string]TableMeta, len(tables))
	for i, table := range tables {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("table at index %d: %w", i, err)
		}
		next[table.TableName] = table.Clone()
	}

	c.mu.Lock()
	c.tables = next
	c.mu.Unlock()

	return nil
}

// RefreshSingle replaces the whole catalog with a single table
func (c *Catalog) RefreshSingle(table TableMeta) error {
	return c.Refresh([]TableMeta{table})
}

// Snapshot returns an independent copy of all entries ordered by table name
func (c *Catalog) Snapshot() []TableMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]TableMeta, 0, len(c.tables))
	for _, table := range c.tables {
		snapshot = append(snapshot, table.Clone())
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].TableName < snapshot[j].TableName
	})

	return snapshot
}

// Len returns the number of cached tables
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tables)
}
