package v1beta1_test

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/api/v1beta1"
)

type object struct {
	v1beta1.TypeMeta
}

func (*object) EnsureDefaults() {}

func TestCheckTypeMeta(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		meta    v1beta1.TypeMeta
		wantErr error
	}{
		"valid": {
			meta: v1beta1.TypeMeta{APIVersion: v1beta1.APIVersion, Kind: "Configuration"},
		},
		"old api version": {
			meta:    v1beta1.TypeMeta{APIVersion: "lifegen.macropower.dev/v1alpha1", Kind: "Configuration"},
			wantErr: v1beta1.ErrUnsupportedAPIVersion,
		},
		"wrong kind": {
			meta:    v1beta1.TypeMeta{APIVersion: v1beta1.APIVersion, Kind: "Policy"},
			wantErr: v1beta1.ErrUnsupportedKind,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v1beta1.CheckTypeMeta(&object{TypeMeta: tc.meta}, "Configuration")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestExtendSchemaWithEnums(t *testing.T) {
	t.Parallel()

	newSchema := func(props ...string) *jsonschema.Schema {
		jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
		for _, p := range props {
			jss.Properties.Set(p, &jsonschema.Schema{Type: "string"})
		}

		return jss
	}

	jss := newSchema("apiVersion", "kind")
	v1beta1.ExtendSchemaWithEnums(jss, []string{"v1", "v1beta1"}, []string{"Configuration"})

	apiVersion, ok := jss.Properties.Get("apiVersion")
	require.True(t, ok)
	require.Len(t, apiVersion.OneOf, 2)
	assert.Equal(t, "v1beta1", apiVersion.OneOf[1].Const)

	kind, ok := jss.Properties.Get("kind")
	require.True(t, ok)
	require.Len(t, kind.OneOf, 1)
	assert.Equal(t, "Configuration", kind.OneOf[0].Const)

	assert.Panics(t, func() {
		v1beta1.ExtendSchemaWithEnums(newSchema("kind"), []string{"v1"}, []string{"Configuration"})
	})
	assert.Panics(t, func() {
		v1beta1.ExtendSchemaWithEnums(newSchema("apiVersion"), []string{"v1"}, []string{"Configuration"})
	})
}
