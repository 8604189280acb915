package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// schemaVersion is the version this store expects. Opening a database
// migrates it to this version; the current version lives in SQLite's
// user_version pragma, so already-applied steps are never re-run.
const schemaVersion = 1

type schemaStep struct {
	version int
	up      string
	down    string
}

// migrateTo walks the database from its recorded version to target,
// applying up steps when moving forward and down steps when moving
// back. Each step updates user_version, so a failure mid-walk leaves
// the version consistent with what actually ran.
func migrateTo(db *sql.DB, target int) error {
	steps, err := loadSchemaSteps()
	if err != nil {
		return err
	}
	current, err := currentSchemaVersion(db)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if step.version > current && step.version <= target {
			if err := applySchemaStep(db, step.up, step.version); err != nil {
				return err
			}
		}
	}
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.version <= current && step.version > target {
			if err := applySchemaStep(db, step.down, step.version-1); err != nil {
				return err
			}
		}
	}
	return nil
}

func currentSchemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func applySchemaStep(db *sql.DB, stmts string, resulting int) error {
	if _, err := db.Exec(stmts); err != nil {
		return fmt.Errorf("migrate schema to version %d: %w", resulting, err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", resulting)); err != nil {
		return fmt.Errorf("record schema version %d: %w", resulting, err)
	}
	return nil
}

// loadSchemaSteps pairs the embedded NNNN_name.up.sql / .down.sql
// files by their numeric prefix and returns them ascending by version.
func loadSchemaSteps() ([]schemaStep, error) {
	names, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list schema files: %w", err)
	}

	byVersion := make(map[int]*schemaStep)
	for _, name := range names {
		base := strings.TrimPrefix(name, "migrations/")
		sep := strings.IndexByte(base, '_')
		if sep < 0 {
			return nil, fmt.Errorf("schema file %s: missing version prefix", name)
		}
		version, err := strconv.Atoi(base[:sep])
		if err != nil {
			return nil, fmt.Errorf("schema file %s: bad version prefix: %w", name, err)
		}
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read schema file %s: %w", name, err)
		}
		step := byVersion[version]
		if step == nil {
			step = &schemaStep{version: version}
			byVersion[version] = step
		}
		switch {
		case strings.HasSuffix(base, ".up.sql"):
			step.up = string(data)
		case strings.HasSuffix(base, ".down.sql"):
			step.down = string(data)
		}
	}

	steps := make([]schemaStep, 0, len(byVersion))
	for _, step := range byVersion {
		steps = append(steps, *step)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].version < steps[j].version })
	return steps, nil
}
