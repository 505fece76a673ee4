package spatialout

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// newCompressor wraps w in the compressor used by f. Close must be called to
// flush the stream trailer; it does not close w.
func newCompressor(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case CSVGzip:
		return newGzipWriter(w), nil
	case CSVZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a compressed format", ErrUnsupportedFormat, f)
	}
}

func newGzipWriter(w io.Writer) *gzip.Writer {
	// NewWriterLevel only fails for an invalid level.
	gz, _ := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	return gz
}

// newDecompressor undoes newCompressor. Plain CSV is passed through.
func newDecompressor(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case CSV:
		return io.NopCloser(r), nil
	case CSVGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gz, nil
	case CSVZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %q is not delimited text", ErrUnsupportedFormat, f)
	}
}
