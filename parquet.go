package spatialout

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// parquetProperties configures every column the same way: statistics on,
// zstd at its default level, dictionaries off and PLAIN values.
func parquetProperties(mem memory.Allocator) *parquet.WriterProperties {
	return parquet.NewWriterProperties(
		parquet.WithAllocator(mem),
		parquet.WithVersion(parquet.V2_LATEST),
		parquet.WithStats(true),
		parquet.WithCompression(compress.Codecs.Zstd),
		parquet.WithDictionaryDefault(false),
		parquet.WithEncoding(parquet.Encodings.Plain),
	)
}

// writeParquet writes t as a single row group. The footer is written before
// returning, so the output is complete once w is closed.
func writeParquet(w io.Writer, t *Table) error {
	mem := memory.NewGoAllocator()
	schema := arrowSchema(t.Schema)

	// The parquet writer closes its sink if it can; the caller owns w.
	fw, err := pqarrow.NewFileWriter(schema, struct{ io.Writer }{w}, parquetProperties(mem), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("parquet writer: %w", err)
	}

	if t.NumRows() > 0 {
		rec, err := arrowRecord(mem, schema, t)
		if err != nil {
			_ = fw.Close()
			return err
		}
		defer rec.Release()
		if err := fw.Write(rec); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet row group: %w", err)
		}
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("parquet footer: %w", err)
	}
	return nil
}

func arrowType(t Type) arrow.DataType {
	switch t {
	case Uint8:
		return arrow.PrimitiveTypes.Uint8
	case Uint16:
		return arrow.PrimitiveTypes.Uint16
	case Uint32:
		return arrow.PrimitiveTypes.Uint32
	case Uint64:
		return arrow.PrimitiveTypes.Uint64
	case Float32:
		return arrow.PrimitiveTypes.Float32
	default:
		return arrow.BinaryTypes.String
	}
}

func arrowSchema(s Schema) *arrow.Schema {
	fields := make([]arrow.Field, len(s))
	for i, f := range s {
		fields[i] = arrow.Field{Name: f.Name, Type: arrowType(f.Type), Nullable: f.Nullable}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowRecord(mem memory.Allocator, schema *arrow.Schema, t *Table) (arrow.Record, error) {
	cols := make([]arrow.Array, len(t.Columns))
	defer func() {
		for _, c := range cols {
			if c != nil {
				c.Release()
			}
		}
	}()
	for i, c := range t.Columns {
		arr, err := arrowArray(mem, c)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", t.Schema[i].Name, err)
		}
		cols[i] = arr
	}
	return array.NewRecord(schema, cols, int64(t.NumRows())), nil
}

func arrowArray(mem memory.Allocator, c Column) (arrow.Array, error) {
	values, valid := unmask(c)
	switch v := values.(type) {
	case Uint8s:
		b := array.NewUint8Builder(mem)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewArray(), nil
	case Uint16s:
		b := array.NewUint16Builder(mem)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewArray(), nil
	case Uint32s:
		b := array.NewUint32Builder(mem)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewArray(), nil
	case Uint64s:
		b := array.NewUint64Builder(mem)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewArray(), nil
	case Float32s:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewArray(), nil
	case Strings:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewArray(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported column implementation %T", ErrSchemaMismatch, values)
	}
}
