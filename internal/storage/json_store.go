package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sandeepkv93/dayplan/internal/planner"
)

//go:embed snapshot.schema.json
var snapshotSchema []byte

var compileSchemaOnce = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("snapshot.schema.json", bytes.NewReader(snapshotSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("snapshot.schema.json")
})

// JSONStore persists the snapshot as a single indented JSON document.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() (planner.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return planner.Snapshot{}, nil
		}
		return planner.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	if err := validateDocument(data); err != nil {
		return planner.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return planner.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, err)
	}
	snap, err := decodeDocument(doc)
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, err)
	}
	return snap, nil
}

func (s *JSONStore) Save(snap planner.Snapshot) error {
	payload, err := json.MarshalIndent(encodeDocument(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	payload = append(payload, '\n')

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) Close() error { return nil }

func validateDocument(data []byte) error {
	schema, err := compileSchemaOnce()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
