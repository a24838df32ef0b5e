// core/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sample = ">sp|P1|PROT_A first protein\nMKTAYIAK\nQRQISFVK\n>P2\nshdlp\n"

func TestReadAll(t *testing.T) {
	path := writeFile(t, "prot.fa", sample)

	recs, err := ReadAllCtx(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Accession != "sp|P1|PROT_A" || recs[0].Description != "first protein" {
		t.Fatalf("header parsed wrong: %+v", recs[0])
	}
	if string(recs[0].Seq) != "MKTAYIAKQRQISFVK" {
		t.Fatalf("multiline sequence joined wrong: %q", recs[0].Seq)
	}
	if recs[1].Accession != "P2" || recs[1].Description != "" {
		t.Fatalf("bare header parsed wrong: %+v", recs[1])
	}
	if string(recs[1].Seq) != "SHDLP" {
		t.Fatalf("sequence not uppercased: %q", recs[1].Seq)
	}
}

func TestGzipInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prot.fa.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(sample)); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}

	recs, err := ReadAllCtx(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || string(recs[0].Seq) != "MKTAYIAKQRQISFVK" {
		t.Fatalf("gzip records wrong: %+v", recs)
	}
}

func TestStreamCtxStopsOnEmitError(t *testing.T) {
	path := writeFile(t, "prot.fa", sample)

	sentinel := errors.New("stop")
	n := 0
	err := StreamCtx(context.Background(), path, func(Record) error {
		n++
		return sentinel
	})
	if !errors.Is(err, sentinel) || n != 1 {
		t.Fatalf("emit error not propagated (n=%d err=%v)", n, err)
	}
}

func TestStreamCtxCancel(t *testing.T) {
	path := writeFile(t, "prot.fa", sample)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := StreamCtx(ctx, path, func(Record) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := ReadAllCtx(context.Background(), filepath.Join(t.TempDir(), "nope.fa")); err == nil {
		t.Fatalf("expected open error")
	}
}
