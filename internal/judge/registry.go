package judge

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var defaultExercises []byte

// SupportedFormat is the major version of the exercise file format.
const SupportedFormat = "v1"

// Exercise is one known exercise: a stable key, the function name it was
// historically looked up by, and literal argument lists to call it with.
type Exercise struct {
	Key      string   `yaml:"key"`
	Function string   `yaml:"function"`
	Args     []string `yaml:"args"`
}

type exerciseFile struct {
	Format    string     `yaml:"format"`
	Exercises []Exercise `yaml:"exercises"`
}

// Registry maps exercise keys to argument tables.
type Registry struct {
	byKey      map[string]*Exercise
	byFunction map[string]*Exercise
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:      make(map[string]*Exercise),
		byFunction: make(map[string]*Exercise),
	}
}

// DefaultRegistry returns the registry built into the binary.
func DefaultRegistry() (*Registry, error) {
	r, err := ParseRegistry(defaultExercises)
	if err != nil {
		return nil, fmt.Errorf("built-in exercises: %w", err)
	}
	return r, nil
}

// ParseRegistry decodes an exercise file.
func ParseRegistry(data []byte) (*Registry, error) {
	var f exerciseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	if !semver.IsValid(f.Format) {
		return nil, fmt.Errorf("exercise format %q is not a semantic version", f.Format)
	}
	if semver.Major(f.Format) != SupportedFormat {
		return nil, fmt.Errorf("exercise format %s is not supported (want %s.x)", f.Format, SupportedFormat)
	}

	r := NewRegistry()
	for i := range f.Exercises {
		ex := f.Exercises[i]
		if ex.Key == "" {
			return nil, fmt.Errorf("exercise %d: missing key", i)
		}
		if len(ex.Args) == 0 {
			return nil, fmt.Errorf("exercise %s: no args", ex.Key)
		}
		if _, dup := r.byKey[ex.Key]; dup {
			return nil, fmt.Errorf("exercise %s: duplicate key", ex.Key)
		}
		r.Add(ex)
	}
	return r, nil
}

// LoadRegistryFile reads an exercise file from disk.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exercises: %w", err)
	}
	r, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Add registers ex, replacing any entry with the same key.
func (r *Registry) Add(ex Exercise) {
	e := ex
	if old, ok := r.byKey[e.Key]; ok && r.byFunction[old.Function] == old {
		delete(r.byFunction, old.Function)
	}
	r.byKey[e.Key] = &e
	if e.Function != "" {
		r.byFunction[e.Function] = &e
	}
}

// Merge copies every entry of other into r. Entries in other win.
func (r *Registry) Merge(other *Registry) {
	for _, key := range other.Keys() {
		r.Add(*other.byKey[key])
	}
}

// Lookup finds the exercise for key. When no entry has that key it falls
// back to the entry registered for the function name, which is how
// exercises were matched before keys existed.
func (r *Registry) Lookup(key, function string) (*Exercise, bool) {
	if ex, ok := r.byKey[key]; ok {
		return ex, true
	}
	if function == "" {
		return nil, false
	}
	ex, ok := r.byFunction[function]
	return ex, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) Len() int { return len(r.byKey) }
