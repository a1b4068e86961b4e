package schema_test

import (
	"testing"

	"github.com/ehsanranjbar/flatdoc/flatten"
	"github.com/ehsanranjbar/flatdoc/schema"
	"github.com/ehsanranjbar/flatdoc/value"
	"github.com/stretchr/testify/require"
)

var _ schema.Flatter[value.Value] = (*flatten.Flattener)(nil)
var _ schema.Flatter[any] = schema.AnyFlatter{}
var _ schema.PathExtractor[value.Value] = schema.FlatPathExtractor{}
var _ schema.PathExtractor[value.Value] = schema.NestedPathExtractor{}

func TestExtractPath(t *testing.T) {
	tests := []struct {
		name    string
		v       string
		path    string
		want    string
		wantErr bool
	}{
		{name: "Simple object", v: `{"foo": "bar"}`, path: "foo", want: `"bar"`},
		{name: "Nested object", v: `{"foo": {"bar": "baz"}}`, path: "foo.bar", want: `"baz"`},
		{name: "Missing key", v: `{"foo": "bar"}`, path: "baz", wantErr: true},
		{name: "Simple array", v: `["foo", "bar", "baz"]`, path: "1", want: `"bar"`},
		{name: "Out of range", v: `["foo", "bar", "baz"]`, path: "3", wantErr: true},
		{name: "Nested array", v: `[["foo", "bar"], ["baz", "qux"]]`, path: "1.0", want: `"baz"`},
		{name: "Wildcard", v: `[{"foo": ["1", "2"]}, {"foo": ["3", "4"]}]`, path: "*.foo.*", want: `["1","2","3","4"]`},
		{name: "Scalar", v: `1`, path: "foo", wantErr: true},
		{name: "Empty path", v: `{"foo": "bar"}`, path: "", want: `{"foo":"bar"}`},
		{name: "Empty key", v: `{"foo": {"": 1}}`, path: "foo.", want: `1`},
		{name: "Invalid index", v: `["foo", "bar"]`, path: "a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := value.Unmarshal([]byte(tt.v))
			require.NoError(t, err)

			got, err := schema.ExtractPath(v, tt.path, ".")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestPathExtractors(t *testing.T) {
	doc, err := value.Unmarshal([]byte(`{"a": {"b": [10, 20]}}`))
	require.NoError(t, err)

	nested := schema.NewNestedPathExtractor("/")
	got, err := nested.ExtractPath(doc, "a/b/1")
	require.NoError(t, err)
	require.Equal(t, int64(20), got)

	flat, err := flatten.New().WithSeparator("/").Flatten(doc)
	require.NoError(t, err)

	got, err = schema.FlatPathExtractor{}.ExtractPath(flat, "a/b/1")
	require.NoError(t, err)
	require.Equal(t, int64(20), got)

	_, err = schema.FlatPathExtractor{}.ExtractPath(flat, "a/b")
	require.Error(t, err)

	require.Panics(t, func() { schema.NewNestedPathExtractor("") })
}

func TestAnyFlatter(t *testing.T) {
	f := schema.NewAnyFlatter(flatten.New().WithSeparator("/"))

	m, err := f.FlattenToMap(map[string]any{
		"name": "bernard",
		"address": map[string]any{
			"city": "melbourne",
			"code": float64(3000),
		},
		"colors": []any{"red", "blue"},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"name":         "bernard",
		"address/city": "melbourne",
		"address/code": int64(3000),
		"colors/0":     "red",
		"colors/1":     "blue",
	}, m)

	_, err = f.Flatten([]any{"value"})
	require.ErrorIs(t, err, flatten.ErrFirstLevelMustBeAnObject)

	_, err = f.Flatten(func() {})
	require.Error(t, err)
}
