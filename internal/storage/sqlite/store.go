package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/monitoring"
	"github.com/banshee-data/cellmeasure/internal/timeutil"
)

var _ measurement.Store = (*Store)(nil)

// Scene describes one persisted scene.
type Scene struct {
	Number    int
	ID        string
	CreatedAt time.Time
}

// Store is a measurement.Store backed by SQLite. Opening a database
// starts a fresh scene after the last one recorded.
type Store struct {
	db      *sql.DB
	clock   timeutil.Clock
	scene   int
	sceneID string
}

// Open opens (creating if needed) the database at path, migrates it to
// the latest schema and begins a new scene.
func Open(path string) (*Store, error) {
	s, err := Connect(path)
	if err != nil {
		return nil, err
	}
	if err := s.MigrateUp(); err != nil {
		s.Close()
		return nil, err
	}

	var last sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(scene_number) FROM measurement_scenes`).Scan(&last); err != nil {
		s.Close()
		return nil, fmt.Errorf("query last scene: %w", err)
	}
	if err := s.beginScene(int(last.Int64) + 1); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Connect opens the database at path without migrating it or starting a
// scene. It is meant for schema maintenance; use Open to record
// measurements.
func Connect(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps PRAGMAs and transactions on one handle.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return &Store{db: db, clock: timeutil.RealClock{}}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock replaces the clock used for scene timestamps and busy retries.
func (s *Store) SetClock(c timeutil.Clock) { s.clock = c }

// SceneID returns the UUID of the current scene.
func (s *Store) SceneID() string { return s.sceneID }

func (s *Store) beginScene(n int) error {
	id := uuid.New().String()
	err := retryOnBusy(s.clock, func() error {
		_, err := s.db.Exec(`
			INSERT INTO measurement_scenes (scene_number, scene_id, created_at_ns)
			VALUES (?, ?, ?)`, n, id, s.clock.Now().UnixNano())
		return err
	})
	if err != nil {
		return fmt.Errorf("begin scene %d: %w", n, err)
	}
	s.scene, s.sceneID = n, id
	return nil
}

// Write implements measurement.Store. The whole column is written in one
// transaction.
func (s *Store) Write(entity, feature string, values []float64) error {
	if entity == measurement.Image && len(values) != 1 {
		return fmt.Errorf("write %s/%s: %w", entity, feature, measurement.ErrImageValueCount)
	}

	return retryOnBusy(s.clock, func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var exists int
		err = tx.QueryRow(`
			SELECT COUNT(*) FROM measurement_features
			WHERE scene_number = ? AND entity = ? AND feature = ?`,
			s.scene, entity, feature).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check %s/%s: %w", entity, feature, err)
		}
		if exists > 0 {
			return fmt.Errorf("write %s/%s in scene %d: %w", entity, feature, s.scene, measurement.ErrDuplicateWrite)
		}

		if _, err := tx.Exec(`
			INSERT INTO measurement_features (scene_number, entity, feature, value_count)
			VALUES (?, ?, ?, ?)`, s.scene, entity, feature, len(values)); err != nil {
			return fmt.Errorf("insert %s/%s: %w", entity, feature, err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO measurements (scene_number, entity, feature, object_index, value)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, v := range values {
			var value interface{} = v
			if math.IsNaN(v) {
				value = nil
			}
			if _, err := stmt.Exec(s.scene, entity, feature, i, value); err != nil {
				return fmt.Errorf("insert %s/%s[%d]: %w", entity, feature, i, err)
			}
		}
		return tx.Commit()
	})
}

// Read implements measurement.Store.
func (s *Store) Read(entity, feature string) ([]float64, error) {
	return s.ReadScene(s.scene, entity, feature)
}

// ReadScene implements measurement.Store.
func (s *Store) ReadScene(scene int, entity, feature string) ([]float64, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT value_count FROM measurement_features
		WHERE scene_number = ? AND entity = ? AND feature = ?`,
		scene, entity, feature).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s in scene %d", measurement.ErrNotFound, entity, feature, scene)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", entity, feature, err)
	}

	rows, err := s.db.Query(`
		SELECT value FROM measurements
		WHERE scene_number = ? AND entity = ? AND feature = ?
		ORDER BY object_index`, scene, entity, feature)
	if err != nil {
		return nil, fmt.Errorf("query %s/%s: %w", entity, feature, err)
	}
	defer rows.Close()

	values := make([]float64, 0, count)
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s/%s: %w", entity, feature, err)
		}
		if v.Valid {
			values = append(values, v.Float64)
		} else {
			values = append(values, math.NaN())
		}
	}
	return values, rows.Err()
}

// Has implements measurement.Store.
func (s *Store) Has(entity, feature string) bool {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM measurement_features
		WHERE scene_number = ? AND entity = ? AND feature = ?`,
		s.scene, entity, feature).Scan(&n)
	if err != nil {
		monitoring.Logf("sqlite: has %s/%s: %v", entity, feature, err)
		return false
	}
	return n > 0
}

// Features implements measurement.Store.
func (s *Store) Features(entity string) []string {
	return s.strings(`
		SELECT feature FROM measurement_features
		WHERE scene_number = ? AND entity = ?
		ORDER BY feature`, s.scene, entity)
}

// Entities implements measurement.Store.
func (s *Store) Entities() []string {
	return s.strings(`
		SELECT DISTINCT entity FROM measurement_features
		WHERE scene_number = ?
		ORDER BY entity`, s.scene)
}

func (s *Store) strings(query string, args ...interface{}) []string {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		monitoring.Logf("sqlite: list: %v", err)
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			monitoring.Logf("sqlite: list: %v", err)
			return nil
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		monitoring.Logf("sqlite: list: %v", err)
	}
	return out
}

// Scene implements measurement.Store.
func (s *Store) Scene() int { return s.scene }

// NextScene implements measurement.Store.
func (s *Store) NextScene() (int, error) {
	if err := s.beginScene(s.scene + 1); err != nil {
		return s.scene, err
	}
	return s.scene, nil
}

// Scenes lists every persisted scene in order.
func (s *Store) Scenes() ([]Scene, error) {
	rows, err := s.db.Query(`
		SELECT scene_number, scene_id, created_at_ns
		FROM measurement_scenes
		ORDER BY scene_number`)
	if err != nil {
		return nil, fmt.Errorf("query scenes: %w", err)
	}
	defer rows.Close()

	var scenes []Scene
	for rows.Next() {
		var sc Scene
		var ns int64
		if err := rows.Scan(&sc.Number, &sc.ID, &ns); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		sc.CreatedAt = time.Unix(0, ns)
		scenes = append(scenes, sc)
	}
	return scenes, rows.Err()
}

// Clear deletes every scene and begins again at scene 1.
func (s *Store) Clear() error {
	err := retryOnBusy(s.clock, func() error {
		_, err := s.db.Exec(`
			DELETE FROM measurements;
			DELETE FROM measurement_features;
			DELETE FROM measurement_scenes;`)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear measurements: %w", err)
	}
	return s.beginScene(1)
}
