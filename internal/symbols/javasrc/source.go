// Package javasrc is a SymbolSource reading Java sources straight from disk.
//
// Sources are matched with doublestar patterns, parsed once per Source and
// indexed by qualified class name. Field types are reported twice: as written
// and with every simple name resolved through the file's imports, the
// java.lang namespace and the classes found in the scan.
package javasrc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
)

type Source struct {
	Fs       afero.Fs
	Patterns []string
	Logger   *slog.Logger

	mu      sync.Mutex
	scanned bool
	classes map[string]*classDecl // qualified name → class
	order   []*classDecl
}

var _ symbols.SymbolSource = (*Source)(nil)

// New returns a Source over fs. Patterns are slash separated and relative to
// the root of fs.
func New(fs afero.Fs, patterns []string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		Fs:       fs,
		Patterns: patterns,
		Logger:   logger,
	}
}

// ListCandidateClasses returns the scanned classes sorted by qualified name.
// rootHint, when set, keeps the classes whose file lies under that directory or
// whose package starts with it.
func (s *Source) ListCandidateClasses(ctx context.Context, rootHint string) ([]model.ClassDescriptor, error) {
	if err := s.index(ctx); err != nil {
		return nil, err
	}

	hint := strings.Trim(filepath.ToSlash(strings.TrimSpace(rootHint)), "/")
	out := make([]model.ClassDescriptor, 0, len(s.order))
	for _, c := range s.order {
		if hint != "" && !underHint(c, hint) {
			continue
		}
		out = append(out, model.ClassDescriptor{QualifiedName: c.qualifiedName(), SimpleName: c.Name})
	}
	slices.SortFunc(out, func(a, b model.ClassDescriptor) int {
		return strings.Compare(a.QualifiedName, b.QualifiedName)
	})
	return out, nil
}

func underHint(c *classDecl, hint string) bool {
	file := c.unit.Path
	if file == hint || strings.HasPrefix(file, hint+"/") {
		return true
	}
	q := c.qualifiedName()
	return q == hint || strings.HasPrefix(q, hint+".")
}

// FieldsOf returns the fields of class followed by those inherited from
// superclasses found in the scan. A field hidden by a subclass field of the
// same name is not repeated. Inherited fields report class as their
// declaring class.
func (s *Source) FieldsOf(ctx context.Context, class model.ClassDescriptor) ([]model.FieldDescriptor, error) {
	if err := s.index(ctx); err != nil {
		return nil, err
	}

	c, ok := s.classes[class.QualifiedName]
	if !ok {
		all := make([]model.ClassDescriptor, 0, len(s.order))
		for _, d := range s.order {
			all = append(all, model.ClassDescriptor{QualifiedName: d.qualifiedName(), SimpleName: d.Name})
		}
		name := class.QualifiedName
		if name == "" {
			name = class.SimpleName
		}
		found, err := symbols.FindClass(all, name)
		if err != nil {
			return nil, err
		}
		c = s.classes[found.QualifiedName]
	}
	return s.fieldsOf(c), nil
}

// binding maps type variables of a superclass to the arguments the subclass
// passed, presentable and qualified.
type binding map[string][2]string

func (b binding) apply(i int, qualify func(string) string) func(string) string {
	return func(n string) string {
		if v, ok := b[n]; ok {
			return v[i]
		}
		return qualify(n)
	}
}

func identity(s string) string { return s }

func (s *Source) fieldsOf(c *classDecl) []model.FieldDescriptor {
	var (
		out     []model.FieldDescriptor
		seen    = make(map[string]bool)
		visited = make(map[*classDecl]bool)
		bind    binding
	)
	for cur := c; cur != nil && !visited[cur]; {
		visited[cur] = true
		plain, qual := bind.apply(0, identity), bind.apply(1, s.qualifier(cur))

		for _, f := range cur.Fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			out = append(out, model.FieldDescriptor{
				DeclaringClass: c.Name,
				FieldName:      f.Name,
				TypeText:       f.Type.format(plain),
				QualifiedType:  f.Type.format(qual),
				Annotations:    slices.Clone(f.Annotations),
				IsStatic:       f.Static,
			})
		}

		next := s.superOf(cur)
		if next == nil {
			break
		}
		nb := make(binding, len(next.TypeParams))
		for i, tp := range next.TypeParams {
			if i < len(cur.Super.Args) {
				nb[tp] = [2]string{cur.Super.Args[i].format(plain), cur.Super.Args[i].format(qual)}
			}
		}
		cur, bind = next, nb
	}
	return out
}

func (s *Source) superOf(c *classDecl) *classDecl {
	if c.Super == nil {
		return nil
	}
	return s.classes[s.qualifier(c)(c.Super.Name)]
}

// qualifier resolves simple type names as seen from inside c.
func (s *Source) qualifier(c *classDecl) func(string) string {
	u := c.unit
	return func(name string) string {
		if primitives[name] || slices.Contains(c.TypeParams, name) {
			return name
		}
		head, _, dotted := strings.Cut(name, ".")
		tail := name[len(head):]

		for _, imp := range u.Imports {
			if imp == name {
				return name
			}
			if strings.HasSuffix(imp, "."+head) {
				return imp + tail
			}
		}
		if !dotted && javaLang[name] {
			return "java.lang." + name
		}
		if q := join(u.Package, head); s.classes[q] != nil {
			return q + tail
		}
		for _, w := range u.Wildcards {
			if s.classes[w+"."+head] != nil || jdkWildcards[w][head] {
				return w + "." + name
			}
		}
		// not scanned and not imported: no package is known for it, so no
		// import is derived from it
		return name
	}
}

func join(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func (s *Source) index(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanned {
		return nil
	}

	files, err := s.files(ctx)
	if err != nil {
		return err
	}

	classes := make(map[string]*classDecl)
	var order []*classDecl
	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return err
		}
		b, err := afero.ReadFile(s.Fs, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		u, err := parseUnit(ctx, f, b)
		if err != nil {
			return err
		}
		for _, c := range u.Classes {
			q := c.qualifiedName()
			if _, dup := classes[q]; dup {
				s.Logger.With("class", q, "file", f).Debug("duplicate class, keeping first")
				continue
			}
			classes[q] = c
			order = append(order, c)
		}
	}

	s.classes, s.order, s.scanned = classes, order, true
	s.Logger.With("files", len(files), "classes", len(order)).Debug("scanned java sources")
	return nil
}

// files lists the slash separated paths matching any pattern, sorted.
func (s *Source) files(ctx context.Context) ([]string, error) {
	set := make(map[string]bool)
	for _, pattern := range s.Patterns {
		pattern = strings.TrimPrefix(path.Clean(filepath.ToSlash(strings.TrimSpace(pattern))), "./")
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid bean pattern %q", pattern)
		}
		base, _ := doublestar.SplitPattern(pattern)

		err := afero.Walk(s.Fs, filepath.FromSlash(base), func(p string, info os.FileInfo, err error) error {
			if err != nil {
				if info == nil && errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if info.IsDir() {
				return nil
			}
			rel := strings.TrimPrefix(filepath.ToSlash(p), "./")
			if ok, _ := doublestar.Match(pattern, rel); ok {
				set[rel] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pattern, err)
		}
	}

	files := make([]string, 0, len(set))
	for f := range set {
		files = append(files, f)
	}
	slices.Sort(files)
	return files, nil
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true,
	"void": true, "var": true, "?": true,
}

var javaLang = map[string]bool{
	"AbstractMethodError": true, "Appendable": true, "ArithmeticException": true,
	"ArrayIndexOutOfBoundsException": true, "ArrayStoreException": true, "AssertionError": true,
	"AutoCloseable": true, "Boolean": true, "BootstrapMethodError": true, "Byte": true,
	"Character": true, "CharSequence": true, "Class": true, "ClassCastException": true,
	"ClassCircularityError": true, "ClassFormatError": true, "ClassLoader": true, "ClassNotFoundException": true,
	"ClassValue": true, "Cloneable": true, "CloneNotSupportedException": true, "Comparable": true,
	"Deprecated": true, "Double": true, "Enum": true, "EnumConstantNotPresentException": true,
	"Error": true, "Exception": true, "ExceptionInInitializerError": true, "Float": true,
	"FunctionalInterface": true, "IllegalAccessError": true, "IllegalAccessException": true,
	"IllegalArgumentException": true, "IllegalCallerException": true, "IllegalMonitorStateException": true,
	"IllegalStateException": true, "IllegalThreadStateException": true, "IncompatibleClassChangeError": true,
	"IndexOutOfBoundsException": true, "InheritableThreadLocal": true, "InstantiationError": true,
	"InstantiationException": true, "Integer": true, "InternalError": true, "InterruptedException": true,
	"Iterable": true, "LayerInstantiationException": true, "LinkageError": true, "Long": true,
	"Math": true, "Module": true, "ModuleLayer": true, "NegativeArraySizeException": true,
	"NoClassDefFoundError": true, "NoSuchFieldError": true, "NoSuchFieldException": true,
	"NoSuchMethodError": true, "NoSuchMethodException": true, "NullPointerException": true,
	"Number": true, "NumberFormatException": true, "Object": true, "OutOfMemoryError": true,
	"Override": true, "Package": true, "Process": true, "ProcessBuilder": true, "ProcessHandle": true,
	"Readable": true, "Record": true, "ReflectiveOperationException": true, "Runnable": true,
	"Runtime": true, "RuntimeException": true, "RuntimePermission": true, "SafeVarargs": true,
	"SecurityException": true, "Short": true, "StackOverflowError": true, "StackTraceElement": true,
	"StackWalker": true, "StrictMath": true, "String": true, "StringBuffer": true, "StringBuilder": true,
	"StringIndexOutOfBoundsException": true, "SuppressWarnings": true, "System": true, "Thread": true,
	"ThreadDeath": true, "ThreadGroup": true, "ThreadLocal": true, "Throwable": true,
	"TypeNotPresentException": true, "UnknownError": true, "UnsatisfiedLinkError": true,
	"UnsupportedClassVersionError": true, "UnsupportedOperationException": true, "VerifyError": true,
	"VirtualMachineError": true, "Void": true,
}

// jdkWildcards resolves names brought in by common on-demand JDK imports.
var jdkWildcards = map[string]map[string]bool{
	"java.util": {
		"List": true, "ArrayList": true, "LinkedList": true, "Map": true,
		"HashMap": true, "LinkedHashMap": true, "TreeMap": true, "Set": true,
		"HashSet": true, "LinkedHashSet": true, "TreeSet": true, "Collection": true,
		"Date": true, "UUID": true, "Optional": true, "Locale": true,
		"Queue": true, "Deque": true,
	},
	"java.time": {
		"LocalDate": true, "LocalDateTime": true, "LocalTime": true, "Instant": true,
		"Duration": true, "Period": true, "OffsetDateTime": true, "ZonedDateTime": true,
	},
	"java.math": {
		"BigDecimal": true, "BigInteger": true,
	},
}
