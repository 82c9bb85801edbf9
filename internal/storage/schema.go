package storage

// schemaSQL is the SQLite schema, kept in lockstep with the Postgres
// migrations under migrations/. Ids are uuid strings generated in Go so
// both backends share one code path.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	user_id    TEXT PRIMARY KEY,
	username   TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS routines (
	routine_id  TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	is_active   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS training_days (
	day_id     TEXT PRIMARY KEY,
	routine_id TEXT NOT NULL REFERENCES routines(routine_id),
	day_name   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_training_days_routine ON training_days(routine_id);

CREATE TABLE IF NOT EXISTS exercises (
	exercise_id          TEXT PRIMARY KEY,
	exercise_name        TEXT NOT NULL,
	exercise_description TEXT NOT NULL DEFAULT '',
	created_at           TIMESTAMP NOT NULL,
	updated_at           TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS exercise_training_day_link (
	link_id     TEXT PRIMARY KEY,
	exercise_id TEXT NOT NULL REFERENCES exercises(exercise_id),
	day_id      TEXT NOT NULL REFERENCES training_days(day_id),
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_link_day ON exercise_training_day_link(day_id);

-- No foreign key on day_id: day_name is snapshotted at start so session
-- history outlives deletion of the training day it was recorded under.
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	day_id      TEXT NOT NULL,
	day_name    TEXT NOT NULL,
	in_progress BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(day_id);

-- Backs the one-in-progress-session-per-day invariant under concurrent
-- starts; StartSession still checks first so callers get the typed error.
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_in_progress
	ON sessions(day_id) WHERE in_progress;

CREATE TABLE IF NOT EXISTS session_exercise_performance (
	performance_id TEXT PRIMARY KEY,
	session_id     TEXT NOT NULL REFERENCES sessions(session_id),
	exercise_id    TEXT NOT NULL REFERENCES exercises(exercise_id),
	set_number     INTEGER NOT NULL,
	weight         REAL NOT NULL,
	reps           INTEGER NOT NULL,
	rir            INTEGER,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL,
	UNIQUE (session_id, exercise_id, set_number)
);
`
