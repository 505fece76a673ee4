package spatialout

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCannotInfer       = errors.New("cannot infer format")
	ErrSchemaMismatch    = errors.New("schema mismatch")
	ErrNonFinite         = errors.New("non-finite coordinate")
	ErrOutOfRange        = errors.New("index out of range")
)

// Format represents an on-disk table encoding.
type Format string

const (
	// Infer selects the encoding from the output file name. It is resolved
	// before anything is written and is never itself an encoding.
	Infer   Format = "infer"
	CSV     Format = "csv"
	CSVGzip Format = "csv-gz"
	CSVZstd Format = "csv-zst"
	Parquet Format = "parquet"
)

var formats = []Format{CSV, CSVGzip, CSVZstd, Parquet}

// Suffixes are checked in this order, so ".csv.gz" wins over ".csv".
var suffixes = []struct {
	suffix string
	format Format
}{
	{".csv.gz", CSVGzip},
	{".csv.zst", CSVZstd},
	{".csv", CSV},
	{".parquet", Parquet},
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Extension returns the canonical file suffix for f, or "" for Infer and
// unknown formats.
func (f Format) Extension() string {
	for _, s := range suffixes {
		if s.format == f {
			return s.suffix
		}
	}
	return ""
}

// Compressed reports whether f wraps delimited text in a compressor.
func (f Format) Compressed() bool {
	return f == CSVGzip || f == CSVZstd
}

// Formats returns all concrete formats. Infer is not included because it
// never names an encoding.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name as used on the command line and in
// config files. Recognizes "infer" and every concrete format.
func ParseFormat(s string) (Format, error) {
	if Format(s) == Infer {
		return Infer, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// InferFormat picks a concrete format from the suffix of filename. Matching
// is case-sensitive.
func InferFormat(filename string) (Format, error) {
	for _, s := range suffixes {
		if strings.HasSuffix(filename, s.suffix) {
			return s.format, nil
		}
	}
	return "", fmt.Errorf("%w for file name %q", ErrCannotInfer, filename)
}

// Resolve returns the concrete format to write filename with. A concrete f is
// returned unchanged; Infer is resolved from the file name.
func Resolve(f Format, filename string) (Format, error) {
	switch f {
	case Infer, "":
		return InferFormat(filename)
	case CSV, CSVGzip, CSVZstd, Parquet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
