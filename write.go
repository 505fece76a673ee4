package spatialout

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Summary describes a file produced by WriteFile or WriteGeoJSONFile.
type Summary struct {
	Path   string
	Format Format
	Rows   int
	Bytes  int64
}

// Write encodes t to w in format f. f must be concrete; use [Resolve] first
// when the format comes from a file name.
func Write(w io.Writer, f Format, t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	switch f {
	case CSV:
		return writeCSV(w, t)
	case CSVGzip, CSVZstd:
		return writeCompressedCSV(w, f, t)
	case Parquet:
		return writeParquet(w, t)
	case Infer:
		return fmt.Errorf("%w: %q must be resolved before writing", ErrUnsupportedFormat, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteFile resolves f against path, then creates path on fsys and writes t
// to it. The format is resolved before the file is created, so a name that
// cannot be inferred leaves nothing on disk. Any other failure may leave a
// truncated file behind.
func WriteFile(fsys afero.Fs, path string, f Format, t *Table) (Summary, error) {
	resolved, err := Resolve(f, path)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Path: path, Format: resolved, Rows: t.NumRows()}
	sum.Bytes, err = createFile(fsys, path, func(w io.Writer) error {
		return Write(w, resolved, t)
	})
	if err != nil {
		return sum, fmt.Errorf("write %s file %s: %w", resolved, path, err)
	}
	return sum, nil
}

// createFile creates path, hands a buffered writer to fn, then flushes and
// closes the file. It returns the number of bytes that reached the file.
func createFile(fsys afero.Fs, path string, fn func(io.Writer) error) (n int64, err error) {
	file, err := fsys.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cw := &countingWriter{w: file}
	bw := bufio.NewWriterSize(cw, 64<<10)
	if err := fn(bw); err != nil {
		return cw.n, err
	}
	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
