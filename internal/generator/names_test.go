package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/viewgen/internal/model"
)

func TestClassStem(t *testing.T) {
	tests := []struct {
		simple, suffix, want string
	}{
		{"UserBean", "Bean", "user"},
		{"UserRoleBean", "Bean", "userRole"},
		{"Role", "Bean", "role"},
		{"Bean", "Bean", "bean"},
		{"URLBean", "Bean", "uRL"},
		{"UserBean", "", "userBean"},
	}
	for _, tt := range tests {
		t.Run(tt.simple, func(t *testing.T) {
			require.Equal(t, tt.want, ClassStem(tt.simple, tt.suffix))
		})
	}
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		stem       string
		isMain     bool
		autoSelect bool
		want       string
	}{
		{"main keeps name", "id", "user", true, true, "id"},
		{"main without auto select is prefixed", "id", "user", true, false, "userId"},
		{"non main prefixed", "code", "role", false, true, "roleCode"},
		{"already prefixed", "roleName", "role", false, true, "roleName"},
		{"prefix match is textual", "roles", "role", false, false, "roles"},
		{"empty field", "", "role", false, false, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveName(tt.field, tt.stem, tt.isMain, tt.autoSelect))
		})
	}
}

func TestCamelToUpperSnake(t *testing.T) {
	for in, want := range map[string]string{
		"Role":     "ROLE",
		"UserRole": "USER_ROLE",
		"role":     "ROLE",
		"userRole": "USER_ROLE",
		"URL":      "U_R_L",
		"":         "",
	} {
		require.Equal(t, want, CamelToUpperSnake(in), in)
	}
}

func TestIsMainClass(t *testing.T) {
	require.True(t, IsMainClass("UserBean", "UserBean"))
	require.True(t, IsMainClass("com.example.bean.UserBean", "UserBean"))
	require.False(t, IsMainClass("com.example.bean.SuperUserBean", "UserBean"))
	require.False(t, IsMainClass("", "UserBean"))
	require.False(t, IsMainClass("UserBean", ""))
}

func TestCapitalization(t *testing.T) {
	require.Equal(t, "Name", Capitalize("name"))
	require.Equal(t, "", Capitalize(""))
	require.Equal(t, "éclair", Decapitalize("Éclair"))
	require.Equal(t, "name", Decapitalize("name"))
}

func TestDefaultMainClass(t *testing.T) {
	classes := []model.ClassDescriptor{
		model.NewClassDescriptor("com.example.bean.UserBean"),
		model.NewClassDescriptor("com.example.bean.RoleBean"),
	}
	require.Equal(t, "RoleBean", DefaultMainClass(classes, "RoleBean"))
	require.Equal(t, "RoleBean", DefaultMainClass(classes, "com.example.bean.RoleBean"))
	require.Equal(t, "UserBean", DefaultMainClass(classes, "DeptBean"))
	require.Equal(t, "UserBean", DefaultMainClass(classes, ""))
	require.Equal(t, "", DefaultMainClass(nil, "UserBean"))
}
