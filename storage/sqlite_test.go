package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"newsfeed/internal/domain"
	"newsfeed/internal/migrations"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLitePreferenceDB, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migrations.Apply(context.Background(), logger, db))
	store := NewSQLitePreferenceDB(db, logger)
	t.Cleanup(func() { store.Close() })
	return store, db
}

func TestSQLitePreferenceDB_LoadProfile_EmptyByDefault(t *testing.T) {
	store, _ := openTestStore(t)

	profile, err := store.LoadProfile(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Empty(t, profile)
	assert.Equal(t, 0, profile.TotalClicks())
}

func TestSQLitePreferenceDB_IncrementClicks(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.IncrementClicks(ctx, domain.CategoryTechnology))
	require.NoError(t, store.IncrementClicks(ctx, domain.CategoryTechnology))
	require.NoError(t, store.IncrementClicks(ctx, domain.CategorySports))

	profile, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, profile[domain.CategoryTechnology])
	assert.Equal(t, 1, profile[domain.CategorySports])
	assert.Equal(t, 0, profile[domain.CategoryHealth])
	assert.Equal(t, 3, profile.TotalClicks())
}

func TestSQLitePreferenceDB_LoadProfile_SkipsUnreadableRows(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.IncrementClicks(ctx, domain.CategoryGeneral))
	// SQLite хранит значения динамически: текст в числовой колонке
	// проходит запись, но не читается как счетчик.
	_, err := db.ExecContext(ctx, `INSERT INTO preferences (category, clicks) VALUES ('science', 'garbage')`)
	require.NoError(t, err)

	profile, err := store.LoadProfile(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, profile[domain.CategoryGeneral])
	assert.NotContains(t, profile, domain.CategoryScience)
}

func TestMigrations_ApplyIsIdempotent(t *testing.T) {
	_, db := openTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Повторный прогон не должен пытаться пересоздать таблицы.
	require.NoError(t, migrations.Apply(context.Background(), logger, db))
}
