package spatialout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
)

// Preview is the head of an encoded table, rendered as text. Null values are
// empty strings.
type Preview struct {
	Header []string
	// Numeric marks columns whose values are all numbers.
	Numeric   []bool
	Rows      [][]string
	TotalRows int64
}

// ReadPreview reads the table at path back and returns its first limit rows.
// f is resolved against path like in [WriteFile]. Parquet files are read with
// an independent parquet implementation, not the one that writes them.
func ReadPreview(fsys afero.Fs, path string, f Format, limit int) (*Preview, error) {
	resolved, err := Resolve(f, path)
	if err != nil {
		return nil, err
	}
	file, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var p *Preview
	switch resolved {
	case Parquet:
		info, serr := file.Stat()
		if serr != nil {
			return nil, serr
		}
		p, err = readParquetPreview(file, info.Size(), limit)
	default:
		p, err = readCSVPreview(file, resolved, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s file %s: %w", resolved, path, err)
	}
	return p, nil
}

func readCSVPreview(r io.Reader, f Format, limit int) (*Preview, error) {
	rc, err := newDecompressor(r, f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Preview{}, nil
	}
	if err != nil {
		return nil, err
	}

	p := &Preview{Header: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(p.Rows) < limit {
			p.Rows = append(p.Rows, record)
		}
		p.TotalRows++
	}
	p.Numeric = guessNumeric(len(header), p.Rows)
	return p, nil
}

func guessNumeric(ncols int, rows [][]string) []bool {
	numeric := make([]bool, ncols)
	for i := range numeric {
		numeric[i] = len(rows) > 0
		for _, row := range rows {
			if row[i] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				numeric[i] = false
				break
			}
		}
	}
	return numeric
}

func readParquetPreview(r io.ReaderAt, size int64, limit int) (*Preview, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, err
	}

	// Element 0 is the root; a flat file has one leaf per column after it.
	elements := pf.Metadata().Schema
	if len(elements) == 0 {
		return nil, errors.New("parquet file has no schema")
	}
	leaves := elements[1:]
	p := &Preview{
		Header:    make([]string, len(leaves)),
		Numeric:   make([]bool, len(leaves)),
		TotalRows: pf.NumRows(),
	}
	unsigned := make([]bool, len(leaves))
	for i, el := range leaves {
		if el.NumChildren > 0 {
			return nil, fmt.Errorf("nested column %q is not supported", el.Name)
		}
		p.Header[i] = el.Name
		if lt := el.LogicalType; lt != nil && lt.Integer != nil {
			unsigned[i] = !lt.Integer.IsSigned
		}
	}

	buf := make([]parquet.Row, 64)
	for _, rg := range pf.RowGroups() {
		if len(p.Rows) >= limit {
			break
		}
		if err := readRowGroup(rg, buf, limit, unsigned, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, limit int, unsigned []bool, p *Preview) error {
	rows := rg.Rows()
	defer rows.Close()
	for len(p.Rows) < limit {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			if len(p.Rows) >= limit {
				break
			}
			p.Rows = append(p.Rows, renderParquetRow(row, unsigned, p.Numeric))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderParquetRow(row parquet.Row, unsigned, numeric []bool) []string {
	cells := make([]string, len(unsigned))
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= len(cells) || v.IsNull() {
			continue
		}
		var b []byte
		switch v.Kind() {
		case parquet.Boolean:
			b = strconv.AppendBool(b, v.Boolean())
		case parquet.Int32:
			if unsigned[col] {
				b = strconv.AppendUint(b, uint64(v.Uint32()), 10)
			} else {
				b = strconv.AppendInt(b, int64(v.Int32()), 10)
			}
		case parquet.Int64:
			if unsigned[col] {
				b = strconv.AppendUint(b, v.Uint64(), 10)
			} else {
				b = strconv.AppendInt(b, v.Int64(), 10)
			}
		case parquet.Float:
			b = appendFloat32(b, v.Float())
		case parquet.Double:
			b = strconv.AppendFloat(b, v.Double(), 'g', -1, 64)
		default:
			cells[col] = string(v.ByteArray())
			continue
		}
		numeric[col] = true
		cells[col] = string(b)
	}
	return cells
}
