package schema

import (
	"fmt"
	"sync"
	"testing"

	"text2sql-api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userTable() TableMeta {
	return TableMeta{
		TableName:   "sys_user",
		Description: "user accounts",
		Columns: []ColumnMeta{
			{Name: "id", Type: "varchar", Description: "primary key"},
			{Name: "user_name", Type: "varchar", Description: "display name"},
		},
	}
}

func logTable() TableMeta {
	return TableMeta{
		TableName:   "sys_log",
		Description: "user operation log",
		Columns: []ColumnMeta{
			{Name: "id", Type: "varchar", Description: "primary key"},
			{Name: "op_type", Type: "int", Description: "operation type"},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		c, err := NewCatalog()
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Snapshot())
	})

	t.Run("pre-seeded catalog", func(t *testing.T) {
		c, err := NewCatalog(userTable(), logTable())
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("invalid seed table", func(t *testing.T) {
		c, err := NewCatalog(TableMeta{TableName: " "})
		assert.Error(t, err)
		assert.True(t, common.IsInvalidArgument(err))
		assert.Nil(t, c)
	})
}

func TestCatalog_Cache(t *testing.T) {
	tests := []struct {
		name      string
		table     TableMeta
		expectErr bool
	}{
		{name: "valid table", table: userTable()},
		{name: "table without columns", table: TableMeta{TableName: "empty_table"}},
		{name: "empty name", table: TableMeta{Description: "no name"}, expectErr: true},
		{name: "blank name", table: TableMeta{TableName: "   "}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog()
			require.NoError(t, err)

			err = c.Cache(tt.table)
			if tt.expectErr {
				assert.True(t, common.IsInvalidArgument(err))
				assert.Equal(t, 0, c.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []TableMeta{tt.table}, c.Snapshot())
		})
	}
}

func TestCatalog_CacheReplacesSameName(t *testing.T) {
	c, err := NewCatalog(userTable())
	require.NoError(t, err)

	replacement := TableMeta{TableName: "sys_user", Description: "replaced"}
	require.NoError(t, c.Cache(replacement))

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "replaced", snapshot[0].Description)
	assert.Empty(t, snapshot[0].Columns)
}

func TestCatalog_CacheAllKeepsEarlierInsertions(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	err = c.CacheAll([]TableMeta{userTable(), {TableName: ""}, logTable()})
	assert.True(t, common.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "index 1")

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "sys_user", snapshot[0].TableName)
}

func TestCatalog_Clear(t *testing.T) {
	c, err := NewCatalog(userTable(), logTable())
	require.NoError(t, err)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Snapshot())
}

func TestCatalog_Refresh(t *testing.T) {
	t.Run("empty list is rejected", func(t *testing.T) {
		c, err := NewCatalog(userTable())
		require.NoError(t, err)

		err = c.Refresh([]TableMeta{})
		assert.True(t, common.IsInvalidArgument(err))
		err = c.Refresh(nil)
		assert.True(t, common.IsInvalidArgument(err))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("refresh replaces everything", func(t *testing.T) {
		c, err := NewCatalog(userTable(), logTable())
		require.NoError(t, err)

		require.NoError(t, c.Refresh([]TableMeta{logTable()}))
		assert.Equal(t, []TableMeta{logTable()}, c.Snapshot())
	})

	t.Run("invalid table leaves catalog unchanged", func(t *testing.T) {
		c, err := NewCatalog(userTable())
		require.NoError(t, err)

		err = c.Refresh([]TableMeta{logTable(), {TableName: ""}})
		assert.True(t, common.IsInvalidArgument(err))
		assert.Equal(t, []TableMeta{userTable()}, c.Snapshot())
	})

	t.Run("refresh single", func(t *testing.T) {
		c, err := NewCatalog(userTable(), logTable())
		require.NoError(t, err)

		require.NoError(t, c.RefreshSingle(userTable()))
		assert.Equal(t, []TableMeta{userTable()}, c.Snapshot())
	})
}

func TestCatalog_SnapshotIsIndependent(t *testing.T) {
	c, err := NewCatalog(userTable(), logTable())
	require.NoError(t, err)

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "sys_log", snapshot[0].TableName)
	assert.Equal(t, "sys_user", snapshot[1].TableName)

	snapshot[1].Columns[0].Name = "mutated"
	c.Clear()

	assert.Len(t, snapshot, 2)
	require.NoError(t, c.Cache(userTable()))
	assert.Equal(t, "id", c.Snapshot()[0].Columns[0].Name)
}

func TestCatalog_CacheCopiesColumns(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	table := userTable()
	require.NoError(t, c.Cache(table))
	table.Columns[0].Name = "mutated"

	assert.Equal(t, "id", c.Snapshot()[0].Columns[0].Name)
}

func TestCatalog_ConcurrentRefreshAndSnapshot(t *testing.T) {
	before := []TableMeta{{TableName: "a1"}, {TableName: "a2"}, {TableName: "a3"}}
	after := []TableMeta{{TableName: "b1"}, {TableName: "b2"}}

	c, err := NewCatalog(before...)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				errs <- c.Refresh(after)
			} else {
				errs <- c.Refresh(before)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snapshot := c.Snapshot()
				prefix := snapshot[0].TableName[:1]
				for _, table := range snapshot {
					if table.TableName[:1] != prefix {
						errs <- fmt.Errorf("mixed snapshot: %v", snapshot)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
