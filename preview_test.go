package spatialout_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/spatialout"
)

func samplePreview() *spatialout.Preview {
	return &spatialout.Preview{
		Header:    []string{"cell", "gene"},
		Numeric:   []bool{true, false},
		Rows:      [][]string{{"1", "a"}, {"10", "bb"}},
		TotalRows: 5,
	}
}

func TestRenderPreview(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		opts spatialout.RenderOptions
		want string
	}{
		"plain": {
			opts: spatialout.RenderOptions{Border: spatialout.BorderNone},
			want: "cell  gene\n" +
				"----  ----\n" +
				"   1  a\n" +
				"  10  bb\n" +
				"2 of 5 rows\n",
		},
		"ascii": {
			opts: spatialout.RenderOptions{Border: spatialout.BorderASCII},
			want: "+------+------+\n" +
				"| cell | gene |\n" +
				"+------+------+\n" +
				"|    1 | a    |\n" +
				"|   10 | bb   |\n" +
				"+------+------+\n" +
				"2 of 5 rows\n",
		},
		"markdown": {
			opts: spatialout.RenderOptions{Markdown: true},
			want: "| cell | gene |\n" +
				"| ---: | ---- |\n" +
				"|    1 | a    |\n" +
				"|   10 | bb   |\n" +
				"2 of 5 rows\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, spatialout.RenderPreview(&buf, samplePreview(), tt.opts))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderPreviewRounded(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, spatialout.RenderPreview(&buf, samplePreview(), spatialout.RenderOptions{}))
	out := buf.String()
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
	assert.Contains(t, out, "│   10 │ bb   │")
}

func TestRenderPreviewMaxWidth(t *testing.T) {
	t.Parallel()
	p := &spatialout.Preview{
		Header: []string{"transcript_id"},
		Rows:   [][]string{{"123456789012"}},
	}
	var buf bytes.Buffer
	require.NoError(t, spatialout.RenderPreview(&buf, p, spatialout.RenderOptions{Border: spatialout.BorderNone, MaxWidth: 6}))
	assert.Equal(t, "tra...\n------\n123...\n1 of 0 rows\n", buf.String())
}

func TestRenderPreviewMarkdownEscapesPipes(t *testing.T) {
	t.Parallel()
	p := &spatialout.Preview{
		Header: []string{"name"},
		Rows:   [][]string{{"a|b"}},
	}
	var buf bytes.Buffer
	require.NoError(t, spatialout.RenderPreview(&buf, p, spatialout.RenderOptions{Markdown: true}))
	assert.Contains(t, buf.String(), `| a\|b |`)
}

func TestRenderPreviewWideCharacters(t *testing.T) {
	t.Parallel()
	p := &spatialout.Preview{
		Header: []string{"rate", "gene"},
		Rows:   [][]string{{"0.5", "细胞"}},
	}
	var buf bytes.Buffer
	require.NoError(t, spatialout.RenderPreview(&buf, p, spatialout.RenderOptions{Border: spatialout.BorderNone}))
	assert.Equal(t, "rate  gene\n----  ----\n0.5   细胞\n1 of 0 rows\n", buf.String())
}

func TestRenderPreviewError(t *testing.T) {
	t.Parallel()
	for _, opts := range []spatialout.RenderOptions{
		{},
		{Border: spatialout.BorderNone},
		{Markdown: true},
	} {
		err := spatialout.RenderPreview(&errWriter{}, samplePreview(), opts)
		require.ErrorIs(t, err, errWriteFailed)
	}
}
