package qlutil_test

import (
	"testing"

	"github.com/araddon/qlbridge/expr"
	qlvm "github.com/araddon/qlbridge/vm"
	"github.com/ehsanranjbar/flatdoc/internal/qlutil"
	"github.com/ehsanranjbar/flatdoc/schema"
	"github.com/ehsanranjbar/flatdoc/value"
	"github.com/stretchr/testify/require"
)

func TestContextWrapper(t *testing.T) {
	flat, err := value.Unmarshal([]byte(`{"name": "bernard", "address.code": 3000}`))
	require.NoError(t, err)

	ctx := qlutil.NewContextWrapper("abc", flat, nil)

	t.Run("Get", func(t *testing.T) {
		v, ok := ctx.Get("name")
		require.True(t, ok)
		require.Equal(t, "bernard", v.Value())

		v, ok = ctx.Get("address.code")
		require.True(t, ok)
		require.Equal(t, int64(3000), v.Value())

		_, ok = ctx.Get("missing")
		require.False(t, ok)

		v, ok = ctx.Get(qlutil.IDKey)
		require.True(t, ok)
		require.Equal(t, "abc", v.Value())
	})

	t.Run("Row", func(t *testing.T) {
		row := ctx.Row()
		require.Len(t, row, 2)
		require.Equal(t, "bernard", row["name"].Value())
	})

	t.Run("Matches", func(t *testing.T) {
		tests := []struct {
			name string
			expr string
			want bool
		}{
			{name: "Equal", expr: `name == "bernard"`, want: true},
			{name: "Greater", expr: `address.code > 2000`, want: true},
			{name: "And", expr: `address.code > 2000 and name == "keith"`, want: false},
			{name: "ID", expr: `_id == "abc"`, want: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				qe, err := expr.ParseExpression(tt.expr)
				require.NoError(t, err)

				got, _ := qlvm.MatchesExpr(ctx, qe)
				require.Equal(t, tt.want, got)
			})
		}
	})
}

func TestContextWrapperNestedExtractor(t *testing.T) {
	doc, err := value.Unmarshal([]byte(`{"address": {"code": 3000}, "tags": ["a", "b"]}`))
	require.NoError(t, err)

	ctx := qlutil.NewContextWrapper(1, doc, schema.NewNestedPathExtractor("."))

	v, ok := ctx.Get("address.code")
	require.True(t, ok)
	require.Equal(t, int64(3000), v.Value())

	v, ok = ctx.Get("tags.1")
	require.True(t, ok)
	require.Equal(t, "b", v.Value())
}
