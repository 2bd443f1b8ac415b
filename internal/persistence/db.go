// Package persistence provides SQLite-based storage of finished runs so a
// later run can pick up where one stopped.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/pendulum"
)

// Latest resolves to the most recently saved run in LoadRun.
const Latest = "latest"

// ErrNoRun is returned when a requested run does not exist.
var ErrNoRun = errors.New("run not found")

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Run describes one recorded run.
type Run struct {
	ID        string          `db:"id"`
	StartedAt time.Time       `db:"-"`
	Mode      string          `db:"mode"` // "live" or "export"
	Count     int             `db:"pendulums"`
	Frames    uint64          `db:"frames"` // frames simulated before saving
	Settings  config.Settings `db:"-"`
}

type runRow struct {
	Run
	StartedUnix  int64  `db:"started_at"`
	SettingsJSON string `db:"settings_json"`
}

type pendulumRow struct {
	Idx uint32          `db:"idx"`
	R1  float64         `db:"r1"`
	R2  float64         `db:"r2"`
	M1  float64         `db:"m1"`
	M2  float64         `db:"m2"`
	A1  sql.NullFloat64 `db:"a1"` // SQLite stores NaN as NULL
	A2  sql.NullFloat64 `db:"a2"`
	A1V sql.NullFloat64 `db:"a1_v"`
	A2V sql.NullFloat64 `db:"a2_v"`
	RGB uint32          `db:"rgb"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		mode TEXT NOT NULL,
		pendulums INTEGER NOT NULL,
		frames INTEGER NOT NULL,
		settings_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pendulums (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		r1 REAL NOT NULL,
		r2 REAL NOT NULL,
		m1 REAL NOT NULL,
		m2 REAL NOT NULL,
		a1 REAL,
		a2 REAL,
		a1_v REAL,
		a2_v REAL,
		rgb INTEGER NOT NULL,
		PRIMARY KEY (run_id, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun stores run and the state of every pendulum in one transaction.
// A run without an ID gets a fresh one; the ID used is returned.
func (db *DB) SaveRun(run Run, pends []pendulum.Pendulum) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	settingsJSON, err := json.Marshal(run.Settings)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, started_at, mode, pendulums, frames, settings_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixNano(), run.Mode, len(pends), run.Frames, string(settingsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO pendulums
		(run_id, idx, r1, r2, m1, m2, a1, a2, a1_v, a2_v, rgb)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, p := range pends {
		_, err := stmt.Exec(
			run.ID, i, p.R1, p.R2, p.M1, p.M2,
			p.A1, p.A2, p.A1V, p.A2V, packRGB(p.Color),
		)
		if err != nil {
			return "", fmt.Errorf("insert pendulum %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("run saved", "id", run.ID, "pendulums", len(pends), "frames", run.Frames)
	return run.ID, nil
}

// LoadRun returns the run with the given id (or Latest) and its pendulums in
// their original order.
func (db *DB) LoadRun(id string) (Run, []pendulum.Pendulum, error) {
	var row runRow
	var err error
	if id == Latest {
		err = db.conn.Get(&row, `SELECT id, started_at, mode, pendulums, frames, settings_json
			FROM runs ORDER BY started_at DESC LIMIT 1`)
	} else {
		err = db.conn.Get(&row, `SELECT id, started_at, mode, pendulums, frames, settings_json
			FROM runs WHERE id = ?`, id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: %s", ErrNoRun, id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("load run %s: %w", id, err)
	}

	run, err := row.decode()
	if err != nil {
		return Run{}, nil, err
	}

	var rows []pendulumRow
	err = db.conn.Select(&rows, `SELECT idx, r1, r2, m1, m2, a1, a2, a1_v, a2_v, rgb
		FROM pendulums WHERE run_id = ? ORDER BY idx`, run.ID)
	if err != nil {
		return Run{}, nil, fmt.Errorf("load pendulums %s: %w", run.ID, err)
	}

	pends := make([]pendulum.Pendulum, len(rows))
	for i, r := range rows {
		pends[i] = pendulum.Pendulum{
			R1: r.R1, R2: r.R2, M1: r.M1, M2: r.M2,
			A1: orNaN(r.A1), A2: orNaN(r.A2), A1V: orNaN(r.A1V), A2V: orNaN(r.A2V),
			Color: unpackRGB(r.RGB),
		}
	}
	return run, pends, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var rows []runRow
	err := db.conn.Select(&rows, `SELECT id, started_at, mode, pendulums, frames, settings_json
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		run, err := r.decode()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r runRow) decode() (Run, error) {
	run := r.Run
	run.StartedAt = time.Unix(0, r.StartedUnix)
	if err := json.Unmarshal([]byte(r.SettingsJSON), &run.Settings); err != nil {
		return Run{}, fmt.Errorf("decode settings for run %s: %w", r.ID, err)
	}
	return run, nil
}

// orNaN restores a diverged value that SQLite kept as NULL.
func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func packRGB(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpackRGB(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
