// Package model defines the resolved documentation model produced from a
// protobuf descriptor set.
//
// # Ownership
//
// Packages own their messages, enums and services. Messages own their fields
// and oneof groups. The ParentMessage and Package fields are non-owning links
// assigned while parsing and during cross-reference resolution; they are
// excluded from JSON and YAML encodings.
//
// # Flattened Views
//
// Result.AllMessages, Result.AllEnums and Result.AllServices reference the same
// instances as Result.Packages. They exist for global lookups and search
// indexing and must not be used to rebuild ownership.
package model
