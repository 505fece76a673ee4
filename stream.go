package spatialout

import (
	"bufio"
	"iter"
)

// writeArray writes the elements of seq as a JSON array. Each element goes on
// its own line and is followed by a comma unless it is the last one; the
// closing bracket is indented by indent. An empty seq is written as "[]".
//
// Elements are rendered as they arrive, so nothing but the current element
// is held in memory and the sequence is consumed exactly once.
func writeArray[T any](w *bufio.Writer, indent string, seq iter.Seq[T], render func(*bufio.Writer, T) error) error {
	if err := w.WriteByte('['); err != nil {
		return err
	}
	first := true
	for v := range seq {
		if !first {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		first = false
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		if err := render(w, v); err != nil {
			return err
		}
	}
	if !first {
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		if _, err := w.WriteString(indent); err != nil {
			return err
		}
	}
	return w.WriteByte(']')
}
