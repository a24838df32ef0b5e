// core/fasta/reader.go
// Package fasta streams protein records from FASTA files. Records are
// emitted whole: peptide-to-protein mapping needs intact sequences, so there
// is no windowing here.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
)

// Record is one protein entry. Accession is the first token of the header;
// Description is the remainder.
type Record struct {
	Accession   string
	Description string
	Seq         []byte
}

// StreamCtx opens path ("-" for stdin, gzip detected by magic number) and
// emits every record. Cancellation via ctx is honored between lines. emit
// may return a non-nil error (e.g. ctx.Err()) to stop early.
func StreamCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		cur Record
		seq = make([]byte, 0, 1<<16)
	)

	flush := func() error {
		if cur.Accession == "" && len(seq) == 0 {
			return nil
		}
		cur.Seq = append([]byte(nil), seq...)
		return emit(cur)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			cur.Accession, cur.Description = splitHeader(line[1:])
			continue
		}
		seq = append(seq, bytes.ToUpper(bytes.TrimSpace(line))...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadAllCtx collects every record of path into memory.
func ReadAllCtx(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := StreamCtx(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func splitHeader(hdr []byte) (accession, description string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
