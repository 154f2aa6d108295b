package javasrc

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
)

const beanDir = "src/main/java/com/example/bean"

const baseBean = `package com.example.bean;

import java.io.Serializable;

public abstract class BaseBean<K> implements Serializable {
    private static final long serialVersionUID = 1L;

    @Id
    private K id;

    private java.time.LocalDateTime createdAt;
}
`

const userBean = `package com.example.bean;

import io.swagger.v3.oas.annotations.media.Schema;
import java.util.*;
import lombok.Data;

/**
 * A user. {@code class Fake { int x; }}
 */
@Data
@Table(name = "t_user")
public class UserBean extends BaseBean<Long> {

    @Schema(description = "user name",
            example = "alice")
    private String name;

    // private int commented;
    private int age = 3, score;

    private List<RoleBean> roles = new ArrayList<>();

    private Map<String, List<Long>> tags = new HashMap<String, List<Long>>();

    private byte[] avatar;

    private String text = """
        not { a field; }
        """;

    static {
        System.out.println("init");
    }

    public UserBean() {
        this.name = "x";
    }

    public String getName() {
        return name;
    }

    public <T> T as(Class<T> type) {
        return null;
    }

    public static class Inner {
        private String hidden;
    }

    public enum Status { ACTIVE, DISABLED }
}
`

const roleBean = `package com.example.bean;

public class RoleBean {
    private long id;
    private String code;
    private Character flag = '}';
}
`

const notABean = `package com.example.bean;

public interface Named {
    String NAME = "x";
    String name();
}
`

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, src := range map[string]string{
		beanDir + "/BaseBean.java":       baseBean,
		beanDir + "/UserBean.java":       userBean,
		beanDir + "/sys/RoleBean.java":   roleBean,
		beanDir + "/Named.java":          notABean,
		"src/main/java/com/example/X.kt": "class X",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(src), 0o644))
	}
	return fs
}

func TestListCandidateClasses(t *testing.T) {
	ctx := context.Background()
	s := New(newFs(t), []string{"src/main/java/**/*.java"}, nil)

	got, err := s.ListCandidateClasses(ctx, "")
	require.NoError(t, err)
	want := []model.ClassDescriptor{
		{QualifiedName: "com.example.bean.BaseBean", SimpleName: "BaseBean"},
		{QualifiedName: "com.example.bean.RoleBean", SimpleName: "RoleBean"},
		{QualifiedName: "com.example.bean.UserBean", SimpleName: "UserBean"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	got, err = s.ListCandidateClasses(ctx, beanDir+"/sys")
	require.NoError(t, err)
	require.Equal(t, []model.ClassDescriptor{{QualifiedName: "com.example.bean.RoleBean", SimpleName: "RoleBean"}}, got)

	got, err = s.ListCandidateClasses(ctx, "com.example.bean.UserBean")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFieldsOf(t *testing.T) {
	ctx := context.Background()
	s := New(newFs(t), []string{"src/main/java/**/*.java"}, nil)

	got, err := s.FieldsOf(ctx, model.NewClassDescriptor("com.example.bean.UserBean"))
	require.NoError(t, err)

	want := []model.FieldDescriptor{
		{
			DeclaringClass: "UserBean", FieldName: "name", TypeText: "String", QualifiedType: "java.lang.String",
			Annotations: []string{`@Schema(description = "user name", example = "alice")`},
		},
		{DeclaringClass: "UserBean", FieldName: "age", TypeText: "int", QualifiedType: "int"},
		{DeclaringClass: "UserBean", FieldName: "score", TypeText: "int", QualifiedType: "int"},
		{
			DeclaringClass: "UserBean", FieldName: "roles",
			TypeText: "List<RoleBean>", QualifiedType: "java.util.List<com.example.bean.RoleBean>",
		},
		{
			DeclaringClass: "UserBean", FieldName: "tags",
			TypeText:      "Map<String, List<Long>>",
			QualifiedType: "java.util.Map<java.lang.String, java.util.List<java.lang.Long>>",
		},
		{DeclaringClass: "UserBean", FieldName: "avatar", TypeText: "byte[]", QualifiedType: "byte[]"},
		{DeclaringClass: "UserBean", FieldName: "text", TypeText: "String", QualifiedType: "java.lang.String"},
		{
			DeclaringClass: "UserBean", FieldName: "serialVersionUID", TypeText: "long", QualifiedType: "long",
			IsStatic: true,
		},
		{
			DeclaringClass: "UserBean", FieldName: "id", TypeText: "Long", QualifiedType: "java.lang.Long",
			Annotations: []string{"@Id"},
		},
		{
			DeclaringClass: "UserBean", FieldName: "createdAt",
			TypeText: "java.time.LocalDateTime", QualifiedType: "java.time.LocalDateTime",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsOfBySimpleName(t *testing.T) {
	s := New(newFs(t), []string{"src/main/java/**/*.java"}, nil)

	got, err := s.FieldsOf(context.Background(), model.ClassDescriptor{SimpleName: "RoleBean"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Character", got[2].TypeText)
	require.Equal(t, "java.lang.Character", got[2].QualifiedType)

	_, err = s.FieldsOf(context.Background(), model.ClassDescriptor{SimpleName: "Missing"})
	require.ErrorIs(t, err, symbols.ErrUnknownClass)
}

func TestCancelledScan(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(newFs(t), []string{"src/main/java/**/*.java"}, nil)
	_, err := s.ListCandidateClasses(ctx, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestMissingBaseDirectory(t *testing.T) {
	s := New(newFs(t), []string{"nowhere/**/*.java"}, nil)
	got, err := s.ListCandidateClasses(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestInvalidPattern(t *testing.T) {
	s := New(newFs(t), []string{"src/[/*.java"}, nil)
	_, err := s.ListCandidateClasses(context.Background(), "")
	require.Error(t, err)
}

const orderBean = `package com.acme;

import java.util.concurrent.Callable;

public class OrderBean {
    private Runnable task = () -> { System.out.println("run"); };
    private Comparable<OrderBean> key;
    private Thread worker;
    private StringBuffer log;
    private Callable<Widget> pending;
}
`

func TestFieldsOfTypeResolution(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/com/acme/OrderBean.java", []byte(orderBean), 0o644))
	s := New(fs, []string{"src/**/*.java"}, nil)

	got, err := s.FieldsOf(context.Background(), model.ClassDescriptor{SimpleName: "OrderBean"})
	require.NoError(t, err)

	qualified := make(map[string]string, len(got))
	for _, f := range got {
		qualified[f.FieldName] = f.QualifiedType
	}
	require.Equal(t, map[string]string{
		"task":    "java.lang.Runnable",
		"key":     "java.lang.Comparable<com.acme.OrderBean>",
		"worker":  "java.lang.Thread",
		"log":     "java.lang.StringBuffer",
		"pending": "java.util.concurrent.Callable<Widget>",
	}, qualified)
}
