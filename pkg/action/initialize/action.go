package initialize

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/viewgen/pkg/manifest"
	"github.com/cmmoran/viewgen/pkg/view"
)

// ErrExists is returned when a file to be created is already present and
// force was not requested.
var ErrExists = errors.New("file exists")

type configFile struct {
	View *view.Options `yaml:"view"`
}

// Generate writes a config file holding opts under the "view" key and an empty
// manifest at opts.Manifest. It returns the paths it wrote. Existing files are
// only replaced when force is set; an existing manifest is never replaced.
func Generate(fs afero.Fs, configPath string, opts *view.Options, force bool) ([]string, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return nil, err
	}
	if exists && !force {
		return nil, fmt.Errorf("%w: %s", ErrExists, configPath)
	}

	data, err := yaml.Marshal(configFile{View: opts})
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err = fs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if err = afero.WriteFile(fs, configPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write config: %w", err)
	}
	written := []string{configPath}

	if ok, err := afero.Exists(fs, opts.Manifest); err != nil || ok {
		return written, err
	}
	if err = (&manifest.Manifest{}).Save(fs, opts.Manifest); err != nil {
		return written, err
	}
	return append(written, opts.Manifest), nil
}
