// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"
)

// JSONL streams values as one JSON object per line. The resolution loop is
// synchronous, so the encoder is too.
type JSONL[T any] struct {
	enc *json.Encoder
}

// NewJSONL returns a line-delimited JSON writer for values of type T.
func NewJSONL[T any](w io.Writer) *JSONL[T] {
	return &JSONL[T]{enc: json.NewEncoder(w)}
}

// Write encodes one value as a single line.
func (j *JSONL[T]) Write(v T) error {
	return j.enc.Encode(v)
}
