package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func record(i int, tenant string) HistoryRecord {
	return HistoryRecord{
		ID:              fmt.Sprintf("rec-%d", i),
		RequestID:       "req-1",
		TenantID:        tenant,
		CalculationID:   fmt.Sprintf("calc-%d", i),
		CalculationType: "inss",
		TablesYear:      2024,
		Properties:      []byte(`{"gross_salary":1000}`),
		Result:          []byte(`{"discount":75}`),
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC),
	}
}

func exerciseHistory(t *testing.T, repo HistoryRepository) {
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		tenant := "a"
		if i%2 == 0 {
			tenant = "b"
		}
		require.NoError(t, repo.Save(ctx, record(i, tenant)))
	}

	all, err := repo.List(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "rec-5", all[0].ID)
	assert.Equal(t, "rec-1", all[4].ID)

	a, err := repo.List(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, a, 2)
	assert.Equal(t, "rec-5", a[0].ID)
	assert.Equal(t, "rec-3", a[1].ID)

	none, err := repo.List(ctx, "c", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	got := all[4]
	assert.JSONEq(t, `{"gross_salary":1000}`, string(got.Properties))
	assert.JSONEq(t, `{"discount":75}`, string(got.Result))
	assert.True(t, got.CreatedAt.Equal(record(1, "a").CreatedAt))
}

func TestHistoryMemory(t *testing.T) {
	exerciseHistory(t, NewHistoryMemory())
}

func TestSQLiteHistory(t *testing.T) {
	repo, err := NewSQLiteHistory(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	defer repo.Close()

	exerciseHistory(t, repo)
}

func TestSQLiteHistory_DuplicateID(t *testing.T) {
	repo, err := NewSQLiteHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, record(1, "a")))
	assert.Error(t, repo.Save(ctx, record(1, "a")))
}
