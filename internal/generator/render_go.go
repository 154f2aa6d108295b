package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/viewgen/internal/model"
)

// GoRenderer emits the view as a Go struct. Join constants become a const
// block, projection metadata becomes a `select` struct tag.
type GoRenderer struct{}

func (r *GoRenderer) Extension() string { return ".go" }

func (r *GoRenderer) Render(file *model.GeneratedFile) (string, error) {
	f := jen.NewFile(goPackageName(file.PackageName))
	f.HeaderComment("Code generated by viewgen. DO NOT EDIT.")

	if len(file.Constants) > 0 {
		f.Const().DefsFunc(func(g *jen.Group) {
			for _, c := range file.Constants {
				g.Id(c.ConstantName).Op("=").Lit(c.JoinKey)
			}
		})
	}

	f.Type().Id(file.ClassName).StructFunc(func(g *jen.Group) {
		for _, wf := range file.Fields {
			if wf.Description != "" {
				g.Comment(wf.Description)
			}
			g.Id(Capitalize(wf.EmittedName)).Add(goType(wf.Source.TypeText)).Tag(goTags(wf))
		}
	})

	buf := new(bytes.Buffer)
	if err := f.Render(buf); err != nil {
		return "", fmt.Errorf("render %s: %w", file.ClassName, err)
	}
	return buf.String(), nil
}

func goTags(wf *model.WorkingField) map[string]string {
	tags := map[string]string{"json": wf.EmittedName}
	switch wf.Projection {
	case model.ProjectionMain:
		tags["select"] = "main"
	case model.ProjectionJoin:
		tags["select"] = fmt.Sprintf("name=%s,from=%s", wf.Source.FieldName, wf.JoinConstant)
	}
	return tags
}

// goPackageName is the last segment of a dotted package, lowercased.
func goPackageName(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		pkg = pkg[i+1:]
	}
	pkg = strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(pkg))
	if pkg == "" {
		return "view"
	}
	return pkg
}

var goScalarTypes = map[string]string{
	"boolean":   "bool",
	"byte":      "int8",
	"short":     "int16",
	"int":       "int32",
	"long":      "int64",
	"float":     "float32",
	"double":    "float64",
	"char":      "rune",
	"String":    "string",
	"Object":    "any",
	"Character": "rune",
}

// boxed Java types are nullable and map to pointers
var goBoxedTypes = map[string]string{
	"Boolean": "bool",
	"Byte":    "int8",
	"Short":   "int16",
	"Integer": "int32",
	"Long":    "int64",
	"Float":   "float32",
	"Double":  "float64",
}

var goQualifiedTypes = map[string][2]string{
	"Date":           {"time", "Time"},
	"LocalDate":      {"time", "Time"},
	"LocalDateTime":  {"time", "Time"},
	"LocalTime":      {"time", "Time"},
	"Instant":        {"time", "Time"},
	"Timestamp":      {"time", "Time"},
	"OffsetDateTime": {"time", "Time"},
	"ZonedDateTime":  {"time", "Time"},
	"Duration":       {"time", "Duration"},
	"BigDecimal":     {"github.com/shopspring/decimal", "Decimal"},
	"BigInteger":     {"math/big", "Int"},
	"UUID":           {"github.com/google/uuid", "UUID"},
}

var goListTypes = map[string]bool{
	"List": true, "ArrayList": true, "LinkedList": true,
	"Set": true, "HashSet": true, "TreeSet": true, "LinkedHashSet": true,
	"Collection": true, "Iterable": true,
}

var goMapTypes = map[string]bool{
	"Map": true, "HashMap": true, "TreeMap": true, "LinkedHashMap": true,
}

// goType maps a presentable Java type to a jen type expression.
func goType(javaType string) *jen.Statement {
	t := strings.TrimSpace(javaType)
	if strings.HasSuffix(t, "[]") {
		elem := strings.TrimSpace(strings.TrimSuffix(t, "[]"))
		if elem == "byte" {
			return jen.Index().Byte()
		}
		return jen.Index().Add(goType(elem))
	}

	raw := RawType(t)
	if i := strings.LastIndex(raw, "."); i >= 0 {
		raw = raw[i+1:]
	}
	args := TypeArguments(t)

	switch {
	case goListTypes[raw]:
		if len(args) == 1 {
			return jen.Index().Add(goType(args[0]))
		}
		return jen.Index().Id("any")
	case goMapTypes[raw]:
		if len(args) == 2 {
			return jen.Map(goType(args[0])).Add(goType(args[1]))
		}
		return jen.Map(jen.String()).Id("any")
	}

	if s, ok := goScalarTypes[raw]; ok {
		return jen.Id(s)
	}
	if s, ok := goBoxedTypes[raw]; ok {
		return jen.Op("*").Id(s)
	}
	if q, ok := goQualifiedTypes[raw]; ok {
		return jen.Qual(q[0], q[1])
	}
	// unknown reference types have no Go counterpart
	return jen.Id("any")
}
