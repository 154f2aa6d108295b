package sink

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// FileHandle points at the file a sink wrote, or the one it found in place.
type FileHandle struct {
	Path    string
	Existed bool // the file was already there and was not touched
}

// FileSink persists generated source text.
type FileSink interface {
	Write(dir, className, text string) (FileHandle, error)
}

// FsSink writes views into an afero filesystem. Paths are slash separated and
// relative to the filesystem root.
type FsSink struct {
	Fs  afero.Fs
	Ext string // file extension, dot included
}

func New(fs afero.Fs, ext string) *FsSink {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &FsSink{Fs: fs, Ext: ext}
}

// Write creates dir as needed and writes text to dir/className+Ext. An existing
// file is returned as is.
func (s *FsSink) Write(dir, className, text string) (FileHandle, error) {
	name := strings.TrimSpace(className)
	if name == "" {
		return FileHandle{}, fmt.Errorf("write view: empty class name")
	}
	p := path.Join(dir, name+s.Ext)

	exists, err := afero.Exists(s.Fs, p)
	if err != nil {
		return FileHandle{}, fmt.Errorf("stat %s: %w", p, err)
	}
	if exists {
		return FileHandle{Path: p, Existed: true}, nil
	}

	if dir != "" {
		if err = s.Fs.MkdirAll(dir, 0o755); err != nil {
			return FileHandle{}, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err = afero.WriteFile(s.Fs, p, []byte(text), 0o644); err != nil {
		return FileHandle{}, fmt.Errorf("write %s: %w", p, err)
	}
	return FileHandle{Path: p}, nil
}

// Read returns the content of dir/className+Ext.
func (s *FsSink) Read(dir, className string) (string, error) {
	p := path.Join(dir, className+s.Ext)
	b, err := afero.ReadFile(s.Fs, p)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(b), nil
}
