package spatialout

import (
	"encoding/csv"
	"io"
)

// writeCSV writes a header of field names and one line per row. Nulls are
// empty fields.
func writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Schema.Names()); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	var buf []byte
	for r := range t.NumRows() {
		for i, col := range t.Columns {
			if !col.Valid(r) {
				record[i] = ""
				continue
			}
			buf = col.AppendText(buf[:0], r)
			record[i] = string(buf)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeCompressedCSV writes the same bytes as writeCSV through a single
// compressed stream.
func writeCompressedCSV(w io.Writer, f Format, t *Table) error {
	zw, err := newCompressor(w, f)
	if err != nil {
		return err
	}
	if err := writeCSV(zw, t); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}
