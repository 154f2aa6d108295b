package generator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/viewgen/internal/model"
)

func TestConstantRegistry(t *testing.T) {
	reg := NewConstantRegistry("")
	require.Equal(t, "ROLE", reg.Get("Role"))
	require.Equal(t, "USER_ROLE", reg.Get("UserRole"))
	require.Equal(t, "ROLE", reg.Get("Role"))
	require.Equal(t, 2, reg.Len())

	require.Equal(t, []model.ConstantEntry{
		{JoinKey: "Role", ConstantName: "ROLE"},
		{JoinKey: "UserRole", ConstantName: "USER_ROLE"},
	}, reg.Entries())
	require.Equal(t, []string{
		`private static final String ROLE = "Role";`,
		`private static final String USER_ROLE = "UserRole";`,
	}, reg.Declarations())
}

func TestConstantRegistryJoinPrefix(t *testing.T) {
	reg := NewConstantRegistry("join")
	require.Equal(t, "ROLE", reg.Get("Role"))
	require.Equal(t, "joinRole", reg.Entries()[0].JoinKey)
}

func TestConstantRegistryCollision(t *testing.T) {
	reg := NewConstantRegistry("")
	require.Equal(t, "A_B", reg.Get("aB"))
	require.Equal(t, "A_B_2", reg.Get("AB"))
	require.Equal(t, "A_B", reg.Get("aB"))
}

func TestConstantRegistryEntriesIsCopy(t *testing.T) {
	reg := NewConstantRegistry("")
	reg.Get("Role")
	e := reg.Entries()
	e[0].ConstantName = "CHANGED"
	require.Equal(t, "ROLE", reg.Entries()[0].ConstantName)
}

func TestConstantRegistryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// stems that collapse onto each other once upper-snaked
	stems := gen.SliceOf(gen.OneConstOf("aB", "AB", "Ab", "ab", "a_B", "Role", "role", "UserRole", "userRole", "User_Role"))

	properties.Property("distinct stems get distinct names", prop.ForAll(
		func(in []string) bool {
			reg := NewConstantRegistry("")
			byName := map[string]string{}
			for _, s := range in {
				name := reg.Get(s)
				if prev, ok := byName[name]; ok && prev != s {
					return false
				}
				byName[name] = s
			}
			return true
		},
		stems,
	))

	properties.Property("Get is memoized", prop.ForAll(
		func(in []string) bool {
			reg := NewConstantRegistry("")
			first := map[string]string{}
			for _, s := range in {
				first[s] = reg.Get(s)
			}
			for _, s := range in {
				if reg.Get(s) != first[s] {
					return false
				}
			}
			return reg.Len() == len(first)
		},
		stems,
	))

	properties.TestingRun(t)
}
