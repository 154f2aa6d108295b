package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"

	"github.com/cmmoran/viewgen/internal/generator"
	"github.com/cmmoran/viewgen/internal/symbols"
	"github.com/cmmoran/viewgen/pkg/manifest"
	"github.com/cmmoran/viewgen/pkg/view"
)

// List returns all views recorded in the manifest.
func List(fs afero.Fs, manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(fs, manifestPath)
}

// Diff regenerates the recorded view name from the current sources and returns
// a unified diff of the file on disk against the regenerated text. An empty
// diff means the view is up to date.
func Diff(ctx context.Context, fs afero.Fs, src symbols.SymbolSource, opts *view.Options, name string, logger *slog.Logger) (string, error) {
	m, err := manifest.Load(fs, opts.Manifest)
	if err != nil {
		return "", err
	}
	v, ok := m.Find(name)
	if !ok {
		return "", fmt.Errorf("view %s not found in manifest", name)
	}

	g, err := generator.New(src, opts, logger)
	if err != nil {
		return "", err
	}
	res, err := g.Generate(ctx, v.Selection)
	if err != nil {
		return "", fmt.Errorf("regenerate %s: %w", name, err)
	}

	onDisk, err := afero.ReadFile(fs, v.File)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", v.File, err)
	}

	return unified(string(onDisk), res.Text, v.File, v.File+" (regenerated)")
}

// DiffCurrentWithPrevious returns a unified diff between the files of the two
// most recently generated views.
func DiffCurrentWithPrevious(fs afero.Fs, manifestPath string) (string, error) {
	m, err := manifest.Load(fs, manifestPath)
	if err != nil {
		return "", err
	}

	if m.Current == "" || m.Previous == "" {
		return "", fmt.Errorf("no current/previous views recorded")
	}

	current, okCur := m.Find(m.Current)
	previous, okPrev := m.Find(m.Previous)
	if !okCur || !okPrev {
		return "", fmt.Errorf("view files not found in manifest")
	}

	cur, err := afero.ReadFile(fs, current.File)
	if err != nil {
		return "", fmt.Errorf("read current view: %w", err)
	}

	prev, err := afero.ReadFile(fs, previous.File)
	if err != nil {
		return "", fmt.Errorf("read previous view: %w", err)
	}

	return unified(string(prev), string(cur), previous.File, current.File)
}

func unified(a, b, fromFile, toFile string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
}
