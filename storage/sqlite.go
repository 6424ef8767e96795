package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"newsfeed/internal/domain"

	_ "modernc.org/sqlite"
)

// OpenDB открывает (или создает) локальный файл базы предпочтений.
// Единственный логический писатель на сессию, поэтому пул ограничен
// одним соединением.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference db %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preference db ping failed: %w", err)
	}
	return db, nil
}

// SQLitePreferenceDB хранит счетчики кликов по рубрикам в локальном
// файле SQLite.
type SQLitePreferenceDB struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLitePreferenceDB(db *sql.DB, log *slog.Logger) *SQLitePreferenceDB {
	log.Info("Initializing SQLite preference storage")
	return &SQLitePreferenceDB{
		db:  db,
		log: log,
	}
}

func (s *SQLitePreferenceDB) Close() error {
	s.log.Info("Closing preference storage")
	return s.db.Close()
}

// LoadProfile читает профиль предпочтений целиком.
// Отсутствующие данные читаются как пустой профиль; битые строки
// (нечитаемые или с отрицательным счетчиком) пропускаются, не роняя
// профиль целиком.
func (s *SQLitePreferenceDB) LoadProfile(ctx context.Context) (domain.PreferenceProfile, error) {
	const op = "storage.sqlite.LoadProfile"
	query := `
	SELECT category, clicks
	FROM preferences;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("Database query failed", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()
	profile := make(domain.PreferenceProfile)
	for rows.Next() {
		var category string
		var clicks int
		if err := rows.Scan(&category, &clicks); err != nil {
			s.log.Warn("Skipping unreadable preference row",
				slog.String("op", op),
				slog.Any("error", err),
			)
			continue
		}
		if clicks < 0 {
			s.log.Warn("Skipping preference row with negative clicks",
				slog.String("op", op),
				slog.String("category", category),
			)
			continue
		}
		profile[domain.Category(category)] = clicks
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: failed to iterate rows: %w", op, err)
	}
	return profile, nil
}

// IncrementClicks увеличивает счетчик рубрики на единицу, создавая запись
// при первом клике. Изменение фиксируется немедленно.
func (s *SQLitePreferenceDB) IncrementClicks(ctx context.Context, category domain.Category) error {
	const op = "storage.sqlite.IncrementClicks"
	query := `
	INSERT INTO preferences (category, clicks)
	VALUES (?, 1)
	ON CONFLICT (category) DO UPDATE SET clicks = clicks + 1;
	`
	if _, err := s.db.ExecContext(ctx, query, string(category)); err != nil {
		s.log.Error("Failed to increment clicks",
			slog.String("op", op),
			slog.String("category", string(category)),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s: failed to execute upsert: %w", op, err)
	}
	return nil
}
