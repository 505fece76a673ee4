package spatialout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/spatialout"
)

func TestNewTableValidates(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		schema spatialout.Schema
		cols   []spatialout.Column
	}{
		"missing column": {
			schema: spatialout.Schema{{Name: "a", Type: spatialout.Uint32}, {Name: "b", Type: spatialout.Uint32}},
			cols:   []spatialout.Column{spatialout.Uint32s{1}},
		},
		"wrong type": {
			schema: spatialout.Schema{{Name: "a", Type: spatialout.Uint32}},
			cols:   []spatialout.Column{spatialout.Uint64s{1}},
		},
		"ragged": {
			schema: spatialout.Schema{{Name: "a", Type: spatialout.Uint32}, {Name: "b", Type: spatialout.Float32}},
			cols:   []spatialout.Column{spatialout.Uint32s{1, 2}, spatialout.Float32s{1}},
		},
		"short mask": {
			schema: spatialout.Schema{{Name: "a", Type: spatialout.Utf8, Nullable: true}},
			cols:   []spatialout.Column{spatialout.WithValidity(spatialout.Strings{"x", "y"}, []bool{true})},
		},
		"null in required field": {
			schema: spatialout.Schema{{Name: "a", Type: spatialout.Utf8}},
			cols:   []spatialout.Column{spatialout.WithValidity(spatialout.Strings{"x", "y"}, []bool{true, false})},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := spatialout.NewTable(tt.schema, tt.cols...)
			require.ErrorIs(t, err, spatialout.ErrSchemaMismatch)
		})
	}
}

func TestTableNumRows(t *testing.T) {
	t.Parallel()
	tbl, err := spatialout.NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())

	tbl, err = spatialout.NewTable(
		spatialout.Schema{{Name: "a", Type: spatialout.Uint8}},
		spatialout.Uint8s{1, 2, 3},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())
}

func TestText(t *testing.T) {
	t.Parallel()
	col := spatialout.WithValidity(spatialout.Float32s{0.1, 2}, []bool{true, false})
	s, ok := spatialout.Text(col, 0)
	assert.True(t, ok)
	assert.Equal(t, "0.1", s)
	_, ok = spatialout.Text(col, 1)
	assert.False(t, ok)
}

func TestSchemaNames(t *testing.T) {
	t.Parallel()
	s := spatialout.Schema{{Name: "cell"}, {Name: "λ_0"}}
	assert.Equal(t, []string{"cell", "λ_0"}, s.Names())
	assert.Equal(t, "uint32", spatialout.Uint32.String())
	assert.True(t, spatialout.Float32.Numeric())
	assert.False(t, spatialout.Utf8.Numeric())
}
