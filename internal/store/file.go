package store

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed progress.schema.json
var progressSchemaJSON []byte

var (
	progressSchemaOnce sync.Once
	progressSchema     *jsonschema.Schema
	progressSchemaErr  error
)

func compiledProgressSchema() (*jsonschema.Schema, error) {
	progressSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(progressSchemaJSON))
		if err != nil {
			progressSchemaErr = fmt.Errorf("parse progress schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://progress.json"
		if err := c.AddResource(url, doc); err != nil {
			progressSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		progressSchema, progressSchemaErr = c.Compile(url)
	})
	return progressSchema, progressSchemaErr
}

// FileStore keeps progress in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the progress file. A missing file yields NewProgress().
// A file that does not match the progress schema is an error.
func (s *FileStore) Load(_ context.Context) (*Progress, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewProgress(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return decodeProgress(data)
}

func decodeProgress(data []byte) (*Progress, error) {
	schema, err := compiledProgressSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("invalid progress file: %w", err)
	}

	p := NewProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	p.normalize()
	return p, nil
}

// Save writes p atomically by renaming a temporary file over the target.
func (s *FileStore) Save(_ context.Context, p *Progress) error {
	if err := ensureDir(s.path); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	data, err := encodeProgress(p)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

func encodeProgress(p *Progress) ([]byte, error) {
	c := p.Clone()
	if c.Completed == nil {
		c.Completed = []string{}
	}
	if c.Unlocked == nil {
		c.Unlocked = []string{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}
