package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection aborts a run: no classes, no fields, or nothing left after filtering.
	ErrEmptySelection = errors.New("empty selection")
	ErrUnknownField   = errors.New("unknown field")
	ErrEmptyClassName = errors.New("view class name is empty")
)

// MissingMainClassReferenceWarning is reported when auto select is on but no
// main class was designated. Every field then takes the non-main path.
type MissingMainClassReferenceWarning struct {
	ClassName string
}

func (w *MissingMainClassReferenceWarning) Error() string {
	return fmt.Sprintf("%s: auto select enabled without a main class, all fields reference join constants", w.ClassName)
}

// DuplicateTargetFileError is reported when the target file already exists.
// The file is left untouched.
type DuplicateTargetFileError struct {
	Path string
}

func (e *DuplicateTargetFileError) Error() string {
	return fmt.Sprintf("%s already exists, not overwritten", e.Path)
}
