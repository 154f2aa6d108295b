package model

import (
	"fmt"
	"strings"
)

// ClassDescriptor identifies a candidate or selected source class.
type ClassDescriptor struct {
	QualifiedName string `json:"qualified_name" yaml:"qualified_name"` // e.g. "com.acme.bean.UserBean"
	SimpleName    string `json:"simple_name" yaml:"simple_name"`       // e.g. "UserBean"
}

// NewClassDescriptor builds a descriptor from a qualified (or simple) class name.
func NewClassDescriptor(qualified string) ClassDescriptor {
	qualified = strings.TrimSpace(qualified)
	simple := qualified
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		simple = qualified[i+1:]
	}
	return ClassDescriptor{QualifiedName: qualified, SimpleName: simple}
}

// Package returns the package part of the qualified name, "" for the default package.
func (c ClassDescriptor) Package() string {
	if i := strings.LastIndex(c.QualifiedName, "."); i >= 0 {
		return c.QualifiedName[:i]
	}
	return ""
}

// Matches reports whether name refers to this class, either by simple or qualified name.
func (c ClassDescriptor) Matches(name string) bool {
	return name != "" && (name == c.SimpleName || name == c.QualifiedName)
}

func (c ClassDescriptor) String() string {
	if c.QualifiedName != "" {
		return c.QualifiedName
	}
	return c.SimpleName
}

// FieldDescriptor is one field of a source class. Two descriptors are the same
// field only when both DeclaringClass and FieldName match.
type FieldDescriptor struct {
	DeclaringClass   string   `json:"declaring_class" yaml:"declaring_class"` // simple name of the owning class
	FieldName        string   `json:"field_name" yaml:"field_name"`
	TypeText         string   `json:"type_text" yaml:"type_text"`                     // presentable type, List<String>
	QualifiedType    string   `json:"qualified_type" yaml:"qualified_type"`           // java.util.List<java.lang.String>
	Annotations      []string `json:"annotations,omitempty" yaml:"annotations,omitempty"` // raw annotation source, declaration order
	IsStatic         bool     `json:"is_static,omitempty" yaml:"is_static,omitempty"`
	IsMainClassField bool     `json:"-" yaml:"-"` // derived once the main class is known
}

// Key is the identity of the field inside one generation run.
func (f FieldDescriptor) Key() string {
	return f.DeclaringClass + "." + f.FieldName
}

// ImportType returns the type text used for import resolution.
func (f FieldDescriptor) ImportType() string {
	if f.QualifiedType != "" {
		return f.QualifiedType
	}
	return f.TypeText
}

func (f FieldDescriptor) String() string {
	return fmt.Sprintf("%s.%s: %s", f.DeclaringClass, f.FieldName, f.TypeText)
}

// ParseFieldRef splits a "Class.field" reference. The class part may be qualified.
func ParseFieldRef(ref string) (FieldDescriptor, error) {
	ref = strings.TrimSpace(ref)
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return FieldDescriptor{}, fmt.Errorf("invalid field reference %q, want Class.field", ref)
	}
	class := NewClassDescriptor(ref[:i])
	return FieldDescriptor{DeclaringClass: class.SimpleName, FieldName: ref[i+1:]}, nil
}

// UserSelections is the immutable snapshot produced by the interaction layer.
type UserSelections struct {
	SelectedClasses    []ClassDescriptor `json:"selected_classes" yaml:"selected_classes"`
	SelectedFields     []FieldDescriptor `json:"selected_fields" yaml:"selected_fields"`
	MainClassName      string            `json:"main_class_name,omitempty" yaml:"main_class_name,omitempty"` // "" when none was designated
	Filename           string            `json:"filename" yaml:"filename"`
	Subfolder          string            `json:"subfolder,omitempty" yaml:"subfolder,omitempty"`
	AutoGenerateSelect bool              `json:"auto_generate_select" yaml:"auto_generate_select"`
}

// ConstantEntry is one join reference constant of a generated view.
type ConstantEntry struct {
	JoinKey      string `json:"join_key" yaml:"join_key"`
	ConstantName string `json:"constant_name" yaml:"constant_name"`
}

// Declaration renders the entry as a Java constant declaration.
func (c ConstantEntry) Declaration() string {
	return fmt.Sprintf("private static final String %s = %q;", c.ConstantName, c.JoinKey)
}

// GeneratedFile is everything a renderer needs to emit one view class.
type GeneratedFile struct {
	PackageName      string
	ClassName        string
	ClassAnnotations []string
	Imports          []string
	Constants        []ConstantEntry
	Fields           []*WorkingField
}

// FieldBlocks returns the rendered Java text of each field, in emission order.
func (g *GeneratedFile) FieldBlocks() []string {
	out := make([]string, 0, len(g.Fields))
	for _, f := range g.Fields {
		out = append(out, f.Block())
	}
	return out
}

// ConstantDeclarations returns the Java declarations of all constants, first-seen order.
func (g *GeneratedFile) ConstantDeclarations() []string {
	out := make([]string, 0, len(g.Constants))
	for _, c := range g.Constants {
		out = append(out, c.Declaration())
	}
	return out
}
