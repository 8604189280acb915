package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/planner"
)

// SQLiteStore persists the snapshot in a local SQLite database. Save
// replaces the full state inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrateTo(db, schemaVersion); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() (planner.Snapshot, error) {
	var snap planner.Snapshot

	rows, err := s.db.Query(`
		SELECT id, description, priority, completed, created_at
		FROM tasks ORDER BY id ASC`)
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			task      model.Task
			priority  string
			completed int
			created   string
		)
		if err := rows.Scan(&task.ID, &task.Description, &priority, &completed, &created); err != nil {
			return planner.Snapshot{}, fmt.Errorf("%w: scan task: %v", ErrCorruptState, err)
		}
		createdAt, err := time.Parse(model.CreatedAtLayout, created)
		if err != nil {
			return planner.Snapshot{}, fmt.Errorf("%w: task %d created_at: %v", ErrCorruptState, task.ID, err)
		}
		task.Priority = model.NormalizePriority(priority)
		task.Completed = completed == 1
		task.CreatedAt = createdAt
		snap.Tasks = append(snap.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("iterate tasks: %w", err)
	}

	slotRows, err := s.db.Query(`
		SELECT slot_minutes, task_id
		FROM schedule_slots ORDER BY slot_minutes ASC, position ASC`)
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("query schedule: %w", err)
	}
	defer slotRows.Close()
	for slotRows.Next() {
		var minutes, taskID int
		if err := slotRows.Scan(&minutes, &taskID); err != nil {
			return planner.Snapshot{}, fmt.Errorf("%w: scan slot: %v", ErrCorruptState, err)
		}
		slot := model.Slot(minutes)
		if !slot.IsValid() {
			return planner.Snapshot{}, fmt.Errorf("%w: slot out of range: %d", ErrCorruptState, minutes)
		}
		n := len(snap.Slots)
		if n == 0 || snap.Slots[n-1].Slot != slot {
			snap.Slots = append(snap.Slots, planner.SlotEntry{Slot: slot})
			n++
		}
		snap.Slots[n-1].TaskIDs = append(snap.Slots[n-1].TaskIDs, taskID)
	}
	if err := slotRows.Err(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("iterate schedule: %w", err)
	}

	return snap, nil
}

func (s *SQLiteStore) Save(snap planner.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedule_slots`); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	for _, task := range snap.Tasks {
		_, err := tx.Exec(`
			INSERT INTO tasks (id, description, priority, completed, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			task.ID, task.Description, string(task.Priority), boolInt(task.Completed),
			task.CreatedAt.Format(model.CreatedAtLayout),
		)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", task.ID, err)
		}
	}

	for _, entry := range snap.Slots {
		for pos, taskID := range entry.TaskIDs {
			_, err := tx.Exec(`
				INSERT INTO schedule_slots (slot_minutes, position, task_id)
				VALUES (?, ?, ?)`,
				int(entry.Slot), pos, taskID,
			)
			if err != nil {
				return fmt.Errorf("insert slot %s: %w", entry.Slot, err)
			}
		}
	}

	return tx.Commit()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
