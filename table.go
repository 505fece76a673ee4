package spatialout

import "fmt"

// Table is a column-major batch of rows described by a schema.
type Table struct {
	Schema  Schema
	Columns []Column
}

// NewTable pairs schema with columns and checks that they agree.
func NewTable(schema Schema, columns ...Column) (*Table, error) {
	t := &Table{Schema: schema, Columns: columns}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NumRows returns the row count shared by every column. A table without
// columns has no rows.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Validate checks that the table has one column per field, that every column
// has its field's type and the shared row count, and that non-nullable
// fields hold no nulls.
func (t *Table) Validate() error {
	if len(t.Schema) != len(t.Columns) {
		return fmt.Errorf("%w: %d fields, %d columns", ErrSchemaMismatch, len(t.Schema), len(t.Columns))
	}
	rows := t.NumRows()
	for i, field := range t.Schema {
		col := t.Columns[i]
		if col.Type() != field.Type {
			return fmt.Errorf("%w: field %q is %s, column is %s", ErrSchemaMismatch, field.Name, field.Type, col.Type())
		}
		if col.Len() != rows {
			return fmt.Errorf("%w: field %q has %d rows, want %d", ErrSchemaMismatch, field.Name, col.Len(), rows)
		}
		_, valid := unmask(col)
		if valid == nil {
			continue
		}
		if len(valid) != rows {
			return fmt.Errorf("%w: field %q has a validity mask of %d rows, want %d", ErrSchemaMismatch, field.Name, len(valid), rows)
		}
		if field.Nullable {
			continue
		}
		for r, ok := range valid {
			if !ok {
				return fmt.Errorf("%w: null in non-nullable field %q at row %d", ErrSchemaMismatch, field.Name, r)
			}
		}
	}
	return nil
}
