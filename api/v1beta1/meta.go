// Package v1beta1 contains the v1beta1 API types for lifegen configuration.
package v1beta1

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

// APIVersion is the current API version for all lifegen configuration kinds.
const APIVersion = "lifegen.macropower.dev/v1beta1"

var (
	// ValidAPIVersions contains all valid API versions.
	ValidAPIVersions = []string{APIVersion}

	ErrUnsupportedAPIVersion = errors.New("unsupported apiVersion")
	ErrUnsupportedKind       = errors.New("unsupported kind")
)

// TypeMeta contains the API version and kind metadata common to all config types.
type TypeMeta struct {
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Object is the interface that all config types implement.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// CheckTypeMeta reports whether obj declares a supported API version and one
// of kinds.
func CheckTypeMeta(obj Object, kinds ...string) error {
	if !slices.Contains(ValidAPIVersions, obj.GetAPIVersion()) {
		return fmt.Errorf("%w %q, expected %q", ErrUnsupportedAPIVersion, obj.GetAPIVersion(), APIVersion)
	}

	if !slices.Contains(kinds, obj.GetKind()) {
		return fmt.Errorf("%w %q, expected one of %q", ErrUnsupportedKind, obj.GetKind(), kinds)
	}

	return nil
}

// ExtendSchemaWithEnums adds apiVersion and kind enum constraints to a JSON schema.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	extendWithConsts(jss, "apiVersion", "API Version", apiVersions)
	extendWithConsts(jss, "kind", "Kind", kinds)
}

func extendWithConsts(jss *jsonschema.Schema, property, title string, values []string) {
	prop, ok := jss.Properties.Get(property)
	if !ok {
		panic(property + " property not found in schema")
	}

	for _, v := range values {
		prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: v,
			Title: title,
		})
	}

	_, _ = jss.Properties.Set(property, prop)
}
