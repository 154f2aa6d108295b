package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/viewgen/internal/model"
)

// View is a generated view entry in the manifest.
type View struct {
	Name        string               `yaml:"name" json:"name"`
	Package     string               `yaml:"package" json:"package"`
	File        string               `yaml:"file" json:"file"`
	GeneratedAt time.Time            `yaml:"generated_at" json:"generated_at"`
	Selection   model.UserSelections `yaml:"selection" json:"selection"`
}

// Manifest tracks the views generated in a project and the selections they
// were generated from.
type Manifest struct {
	Current  string `yaml:"current,omitempty" json:"current,omitempty"`
	Previous string `yaml:"previous,omitempty" json:"previous,omitempty"`
	Views    []View `yaml:"views" json:"views"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddView records a view, updating the current/previous pointers and replacing
// an existing entry with the same package and name.
func (m *Manifest) AddView(v View) {
	key := v.key()
	if m.Current != key {
		m.Previous = m.Current
	}
	m.Current = key

	for i := range m.Views {
		if m.Views[i].key() == key {
			m.Views[i] = v
			return
		}
	}

	m.Views = append(m.Views, v)
}

// Find returns the view named name, which may be simple or package qualified.
func (m *Manifest) Find(name string) (View, bool) {
	for _, v := range slices.Backward(m.Views) {
		if v.Name == name || v.key() == name {
			return v, true
		}
	}
	return View{}, false
}

// Names returns the qualified names of every recorded view, in record order.
func (m *Manifest) Names() []string {
	out := make([]string, 0, len(m.Views))
	for _, v := range m.Views {
		out = append(out, v.key())
	}
	return out
}

func (v View) key() string {
	if v.Package == "" {
		return v.Name
	}
	return strings.Join([]string{v.Package, v.Name}, ".")
}
