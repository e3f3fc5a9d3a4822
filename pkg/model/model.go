package model

import (
	"fmt"
	"strings"
)

// TypeKind classifies what a type reference points at
type TypeKind string

const (
	TypeKindMessage TypeKind = "MESSAGE"
	TypeKindEnum    TypeKind = "ENUM"
	TypeKindUnknown TypeKind = "UNKNOWN"
)

// CodeItem holds the attributes shared by every documented declaration
type CodeItem struct {
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionHTML string `json:"-" yaml:"-"`
	SourceFilePath  string `json:"source_file_path,omitempty" yaml:"source_file_path,omitempty"`
	LineNumber      int    `json:"line_number" yaml:"line_number"`
	RepositoryURL   string `json:"repository_url,omitempty" yaml:"repository_url,omitempty"`
}

// LocationInfo is the comment and line number recorded for one structural path
type LocationInfo struct {
	LineNumber int
	Comments   string
}

// Package groups every declaration contributed by descriptor files sharing a package name
type Package struct {
	CodeItem `yaml:",inline"`
	Messages []*Message `json:"messages" yaml:"messages"`
	Enums    []*Enum    `json:"enums" yaml:"enums"`
	Services []*Service `json:"services" yaml:"services"`
}

// Message is a protobuf message, possibly nested inside another message
type Message struct {
	CodeItem         `yaml:",inline"`
	FullName         string             `json:"full_name" yaml:"full_name"`
	IsMapEntry       bool               `json:"is_map_entry,omitempty" yaml:"is_map_entry,omitempty"`
	Fields           []*MessageField    `json:"fields" yaml:"fields"`
	OneOfFieldGroups []*OneOfFieldGroup `json:"oneof_field_groups,omitempty" yaml:"oneof_field_groups,omitempty"`
	TypeKind         TypeKind           `json:"type_kind" yaml:"type_kind"`

	// ParentMessage and Package are non-owning links.
	ParentMessage *Message `json:"-" yaml:"-"`
	Package       *Package `json:"-" yaml:"-"`
}

// FullType returns the fully qualified type name of the message
func (m *Message) FullType() string {
	return m.FullName
}

// MessageField is a single field of a message
type MessageField struct {
	CodeItem        `yaml:",inline"`
	Number          int      `json:"number" yaml:"number"`
	Label           string   `json:"label,omitempty" yaml:"label,omitempty"`
	Type            string   `json:"type" yaml:"type"`
	FullType        string   `json:"full_type" yaml:"full_type"`
	DefaultValue    string   `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	TypeKind        TypeKind `json:"type_kind" yaml:"type_kind"`
	IsPackageHidden bool     `json:"is_package_hidden,omitempty" yaml:"is_package_hidden,omitempty"`

	// OneofName is nil unless the field belongs to a user-declared oneof.
	OneofName *string `json:"oneof_name,omitempty" yaml:"oneof_name,omitempty"`

	Package *Package `json:"-" yaml:"-"`
}

// IsMap reports whether the field was rewritten to the synthetic map<K, V> form
func (f *MessageField) IsMap() bool {
	return strings.HasPrefix(f.FullType, "map<")
}

// OneOfFieldGroup lists the fields of a message sharing one oneof declaration
type OneOfFieldGroup struct {
	Name   string          `json:"name" yaml:"name"`
	Fields []*MessageField `json:"fields" yaml:"fields"`
}

// Enum is a protobuf enum, possibly nested inside a message
type Enum struct {
	CodeItem `yaml:",inline"`
	FullName string       `json:"full_name" yaml:"full_name"`
	Values   []*EnumValue `json:"values" yaml:"values"`
	TypeKind TypeKind     `json:"type_kind" yaml:"type_kind"`

	ParentMessage *Message `json:"-" yaml:"-"`
	Package       *Package `json:"-" yaml:"-"`
}

// EnumValue is one named constant of an enum
type EnumValue struct {
	CodeItem `yaml:",inline"`
	Number   int `json:"number" yaml:"number"`
}

// Service is a protobuf RPC service
type Service struct {
	CodeItem `yaml:",inline"`
	FullName string           `json:"full_name" yaml:"full_name"`
	Methods  []*ServiceMethod `json:"methods" yaml:"methods"`
}

// ServiceMethod is one RPC of a service
type ServiceMethod struct {
	CodeItem        `yaml:",inline"`
	Request         *ServiceMethodArgument `json:"request" yaml:"request"`
	Response        *ServiceMethodArgument `json:"response" yaml:"response"`
	ClientStreaming bool                   `json:"client_streaming,omitempty" yaml:"client_streaming,omitempty"`
	ServerStreaming bool                   `json:"server_streaming,omitempty" yaml:"server_streaming,omitempty"`
}

// ServiceMethodArgument is the request or response type of an RPC
type ServiceMethodArgument struct {
	Type     string   `json:"type" yaml:"type"`
	FullType string   `json:"full_type" yaml:"full_type"`
	TypeKind TypeKind `json:"type_kind" yaml:"type_kind"`

	Package *Package `json:"-" yaml:"-"`
}

// Result is the fully resolved model handed to renderers and indexers.
// AllMessages, AllEnums and AllServices are flattened views over the
// instances owned by Packages.
type Result struct {
	Packages    []*Package `json:"packages" yaml:"packages"`
	AllMessages []*Message `json:"-" yaml:"-"`
	AllEnums    []*Enum    `json:"-" yaml:"-"`
	AllServices []*Service `json:"-" yaml:"-"`
}

// Package returns the package with the given name, or nil
func (r *Result) Package(name string) *Package {
	for _, p := range r.Packages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FindMessage finds a message by its fully qualified name
func (r *Result) FindMessage(fullName string) *Message {
	for _, m := range r.AllMessages {
		if m.FullName == fullName {
			return m
		}
	}
	return nil
}

// FindEnum finds an enum by its fully qualified name
func (r *Result) FindEnum(fullName string) *Enum {
	for _, e := range r.AllEnums {
		if e.FullName == fullName {
			return e
		}
	}
	return nil
}

// Summary returns a one-line summary of the result
func (r *Result) Summary() string {
	return fmt.Sprintf("Packages: %d, Messages: %d, Enums: %d, Services: %d",
		len(r.Packages), len(r.AllMessages), len(r.AllEnums), len(r.AllServices))
}

// PageName returns the file name used for the package's documentation page
func (p *Package) PageName() string {
	if p.Name == "" {
		return "__default"
	}
	return p.Name
}
