// internal/parser/reader.go
// Package parser reads tool-agnostic tab-delimited PSM rows. Column order is
// discovered from the header line; per-tool file formats are handled
// upstream of this program and are out of scope here.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one raw PSM as read from the input, before modification
// resolution.
type Row struct {
	ResultID int // 1-based input row number
	Scan     int
	Charge   int
	Peptide  string // may carry flanks, mod symbols, and inline mass deltas
	Protein  string
	Score    float64
	HasScore bool
}

// canonical column names and their accepted synonyms (lowercased).
var columnSynonyms = map[string]string{
	"scan":       "scan",
	"scannum":    "scan",
	"scan_num":   "scan",
	"spectrum":   "scan",
	"charge":     "charge",
	"z":          "charge",
	"peptide":    "peptide",
	"sequence":   "peptide",
	"protein":    "protein",
	"proteins":   "protein",
	"score":      "score",
	"msgfscore":  "score",
	"hyperscore": "score",
	"xcorr":      "score",
}

// Reader streams rows from one tab-delimited PSM file.
type Reader struct {
	sc     *bufio.Scanner
	cols   map[string]int // canonical name -> column index
	line   int
	nextID int
}

// NewReader consumes the header line of r and maps its columns. A peptide
// column is mandatory; everything else is optional.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("psm input: %w", err)
		}
		return nil, fmt.Errorf("psm input: empty file")
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if canon, ok := columnSynonyms[name]; ok {
			if _, dup := cols[canon]; !dup {
				cols[canon] = i
			}
		}
	}
	if _, ok := cols["peptide"]; !ok {
		return nil, fmt.Errorf("psm input: no peptide column in header %q", strings.Join(header, "\t"))
	}
	return &Reader{sc: sc, cols: cols, line: 1}, nil
}

// Read returns the next row, io.EOF at end of input, or a descriptive error
// for a malformed row (the caller may skip it and keep reading).
func (r *Reader) Read() (Row, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimRight(r.sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		get := func(name string) string {
			i, ok := r.cols[name]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		r.nextID++
		row := Row{ResultID: r.nextID, Peptide: get("peptide")}
		if row.Peptide == "" {
			return Row{}, fmt.Errorf("line %d: empty peptide", r.line)
		}
		if s := get("scan"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Row{}, fmt.Errorf("line %d: bad scan %q", r.line, s)
			}
			row.Scan = n
		}
		if s := get("charge"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Row{}, fmt.Errorf("line %d: bad charge %q", r.line, s)
			}
			row.Charge = n
		}
		row.Protein = get("protein")
		if s := get("score"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Row{}, fmt.Errorf("line %d: bad score %q", r.line, s)
			}
			row.Score = v
			row.HasScore = true
		}
		return row, nil
	}
	if err := r.sc.Err(); err != nil {
		return Row{}, fmt.Errorf("psm input: %w", err)
	}
	return Row{}, io.EOF
}
