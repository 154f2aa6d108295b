package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cmmoran/viewgen/internal/model"
)

// Decapitalize lowercases the first rune of s when it is upper case.
func Decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Capitalize uppercases the first rune of s, leaving the rest unchanged.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TrimClassSuffix strips suffix ("Bean") from a simple class name. A name equal
// to the suffix is kept as is.
func TrimClassSuffix(simpleName, suffix string) string {
	if suffix == "" || simpleName == suffix {
		return simpleName
	}
	return strings.TrimSuffix(simpleName, suffix)
}

// ClassStem is the prefix candidate of a class: suffix stripped, decapitalized.
//
//	UserRoleBean → userRole
func ClassStem(simpleName, suffix string) string {
	return Decapitalize(TrimClassSuffix(simpleName, suffix))
}

// ResolveName computes the emitted identifier of a field. Main-class fields keep
// their name when auto select is on; so does any field already starting with
// stem. Everything else becomes stem + Capitalize(fieldName).
func ResolveName(fieldName, stem string, isMain, autoSelect bool) string {
	if (isMain && autoSelect) || strings.HasPrefix(fieldName, stem) {
		return fieldName
	}
	return stem + Capitalize(fieldName)
}

// CamelToUpperSnake splits s before every upper-case rune except the first,
// joins the parts with "_" and upper-cases the result.
//
//	UserRole → USER_ROLE
func CamelToUpperSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// IsMainClass reports whether declaringClass (a simple name) is the designated
// main class. mainClassName may be simple or qualified.
func IsMainClass(mainClassName, declaringClass string) bool {
	if mainClassName == "" || declaringClass == "" {
		return false
	}
	return mainClassName == declaringClass || strings.HasSuffix(mainClassName, "."+declaringClass)
}

// DefaultMainClass picks the main class when none was given: current when it
// is one of classes, else the first class. It returns a simple name.
func DefaultMainClass(classes []model.ClassDescriptor, current string) string {
	for _, c := range classes {
		if c.Matches(current) {
			return c.SimpleName
		}
	}
	if len(classes) > 0 {
		return classes[0].SimpleName
	}
	return ""
}
