package generator

import (
	"strconv"

	"github.com/cmmoran/viewgen/internal/model"
)

// ConstantRegistry hands out join constants for one generation run. Names are
// derived on first use and memoized; entries keep first-seen order.
type ConstantRegistry struct {
	joinPrefix string
	byStem     map[string]string // class stem → constant name
	taken      map[string]bool   // constant names already assigned
	entries    []model.ConstantEntry
}

func NewConstantRegistry(joinPrefix string) *ConstantRegistry {
	return &ConstantRegistry{
		joinPrefix: joinPrefix,
		byStem:     make(map[string]string),
		taken:      make(map[string]bool),
	}
}

// Get returns the constant name for classStem, registering it on first call.
func (r *ConstantRegistry) Get(classStem string) string {
	if name, ok := r.byStem[classStem]; ok {
		return name
	}

	base := CamelToUpperSnake(classStem)
	name := base
	// distinct stems can collapse to one name ("aB" and "AB" both give A_B)
	for n := 2; r.taken[name]; n++ {
		name = base + "_" + strconv.Itoa(n)
	}

	r.byStem[classStem] = name
	r.taken[name] = true
	r.entries = append(r.entries, model.ConstantEntry{
		JoinKey:      r.joinPrefix + classStem,
		ConstantName: name,
	})
	return name
}

// Entries returns a copy of the registered constants in first-seen order.
func (r *ConstantRegistry) Entries() []model.ConstantEntry {
	out := make([]model.ConstantEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *ConstantRegistry) Len() int {
	return len(r.entries)
}

// Declarations renders every entry as a Java constant declaration.
func (r *ConstantRegistry) Declarations() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Declaration())
	}
	return out
}
