package stubapi

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Store is the stub's persistence layer over sqlite (default) or postgres.
type Store struct {
	db *sql.DB
}

// Open opens the DB and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
		if dsn == "" {
			dsn = "file:prepadmin-stub.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx"
		if dsn == "" {
			dsn = "postgres://localhost:5432/prepadmin?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// placeholder returns the n-th positional SQL placeholder. Both pgx and
// modernc sqlite accept the $n form.
func placeholder(n int) string { return fmt.Sprintf("$%d", n) }

// One schema serves both drivers: TEXT ids, JSON-encoded list columns,
// RFC 3339 timestamps as TEXT.
const schema = `
CREATE TABLE IF NOT EXISTS exams (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  exam_date TEXT NOT NULL,
  target_levels_json TEXT NOT NULL DEFAULT '[]',
  prep_levels_json TEXT NOT NULL DEFAULT '[]',
  description TEXT NOT NULL DEFAULT '',
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS classes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  min_class_level INTEGER NOT NULL,
  max_class_level INTEGER NOT NULL,
  exam_id TEXT NOT NULL DEFAULT '',
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subjects (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  order_index INTEGER NOT NULL DEFAULT 0,
  min_class_level INTEGER NOT NULL DEFAULT 0,
  max_class_level INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  subject_id TEXT NOT NULL,
  class_id TEXT NOT NULL,
  parent_id TEXT NOT NULL DEFAULT '',
  order_index INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  topic_id TEXT NOT NULL,
  difficulty_level TEXT NOT NULL,
  question_text TEXT NOT NULL DEFAULT '',
  question_image_url TEXT NOT NULL DEFAULT '',
  question_pdf_url TEXT NOT NULL DEFAULT '',
  solution_text TEXT NOT NULL DEFAULT '',
  solution_image_url TEXT NOT NULL DEFAULT '',
  solution_pdf_url TEXT NOT NULL DEFAULT '',
  has_multiple_correct BOOLEAN NOT NULL DEFAULT FALSE,
  explanation TEXT NOT NULL DEFAULT '',
  keywords_json TEXT NOT NULL DEFAULT '[]',
  estimated_time INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS answers (
  id TEXT PRIMARY KEY,
  question_id TEXT NOT NULL,
  option_label TEXT NOT NULL,
  answer_text TEXT NOT NULL DEFAULT '',
  answer_image_url TEXT NOT NULL DEFAULT '',
  is_correct BOOLEAN NOT NULL DEFAULT FALSE,
  order_index INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  phone_number TEXT NOT NULL,
  name TEXT NOT NULL,
  surname TEXT NOT NULL,
  gender TEXT NOT NULL,
  class_id TEXT NOT NULL DEFAULT '',
  exam_id TEXT NOT NULL DEFAULT '',
  goal_count INTEGER NOT NULL DEFAULT 0,
  completed_goal_count INTEGER NOT NULL DEFAULT 0,
  program_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS onboarding_profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  profile_type TEXT NOT NULL DEFAULT '',
  primary_goal TEXT NOT NULL DEFAULT '',
  target_date TEXT NOT NULL DEFAULT '',
  exam_type TEXT NOT NULL DEFAULT '',
  motivation TEXT NOT NULL DEFAULT '',
  focus_areas_json TEXT NOT NULL DEFAULT '[]',
  daily_minutes INTEGER NOT NULL DEFAULT 0,
  weekly_minutes INTEGER NOT NULL DEFAULT 0,
  preferred_study_times TEXT NOT NULL DEFAULT '',
  learning_style TEXT NOT NULL DEFAULT '',
  reminder_time TEXT NOT NULL DEFAULT '',
  completed BOOLEAN NOT NULL DEFAULT FALSE,
  updated_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS availability_slots (
  id TEXT PRIMARY KEY,
  profile_id TEXT NOT NULL,
  day_of_week INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  intensity TEXT NOT NULL DEFAULT '',
  priority TEXT NOT NULL DEFAULT ''
);
`
