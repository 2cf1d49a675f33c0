// Package config loads lifegen configuration files.
//
// Documents are schema-validated before decoding, and YAML and schema errors
// are rendered against the source with the theme named in the document.
package config
