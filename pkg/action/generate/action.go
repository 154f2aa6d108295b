package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/viewgen/internal/generator"
	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/sink"
	"github.com/cmmoran/viewgen/internal/symbols"
	"github.com/cmmoran/viewgen/internal/symbols/catalog"
	"github.com/cmmoran/viewgen/internal/symbols/javasrc"
	"github.com/cmmoran/viewgen/pkg/manifest"
	"github.com/cmmoran/viewgen/pkg/view"
)

// OpenSource returns the symbol source configured by opts: the YAML catalog
// when one is set, else a scan of the bean sources. fs is rooted at the
// project root.
func OpenSource(fs afero.Fs, opts *view.Options, logger *slog.Logger) (symbols.SymbolSource, error) {
	if opts.Catalog != "" {
		return catalog.Load(fs, opts.Catalog)
	}
	return javasrc.New(fs, opts.BeanPatterns, logger), nil
}

// LoadSelection reads UserSelections from a YAML file.
func LoadSelection(fs afero.Fs, path string) (model.UserSelections, error) {
	var sel model.UserSelections
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return sel, fmt.Errorf("read selection: %w", err)
	}
	if err = yaml.Unmarshal(data, &sel); err != nil {
		return sel, fmt.Errorf("unmarshal selection: %w", err)
	}
	return sel, nil
}

// Generate renders the view described by sel and, unless dryRun is set,
// writes it below the project root and records it in the manifest. An
// existing view file is left untouched and not recorded again.
func Generate(ctx context.Context, fs afero.Fs, src symbols.SymbolSource, opts *view.Options, sel model.UserSelections, dryRun bool, logger *slog.Logger) (*generator.Result, error) {
	g, err := generator.New(src, opts, logger)
	if err != nil {
		return nil, err
	}
	res, err := g.Generate(ctx, sel)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return res, nil
	}

	if err = g.Write(res, sink.New(fs, g.Opts.Extension())); err != nil {
		return nil, err
	}
	if res.Existed() {
		return res, nil
	}

	m, err := manifest.Load(fs, g.Opts.Manifest)
	if err != nil {
		return nil, err
	}
	m.AddView(manifest.View{
		Name:        res.File.ClassName,
		Package:     res.File.PackageName,
		File:        res.Path,
		GeneratedAt: time.Now().UTC(),
		Selection:   sel,
	})
	if err = m.Save(fs, g.Opts.Manifest); err != nil {
		return nil, err
	}
	return res, nil
}
