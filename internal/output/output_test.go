// internal/output/output_test.go
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phrp/internal/parser"
	"phrp/internal/pipeline"
	"phrp/internal/writers"
	"phrp/pkg/api"

	"phrp-core/mass"
	"phrp-core/modification"
)

// Downstream parsers key on the exact column order; treat it as frozen.
func TestSynopsisHeaderSnapshot(t *testing.T) {
	assert.Equal(t,
		"result_id\tscan\tcharge\tpeptide\tclean_sequence\tprefix\tsuffix\tmonoisotopic_mass\tmz\tmod_count\tmod_description\tcleavage_state\tterminus_state\tmissed_cleavages\tprotein\tscore\tsource_file",
		SynopsisHeader)
}

func resolveOne(t *testing.T, peptideStr string) *pipeline.Result {
	t.Helper()
	deps := pipeline.Deps{Registry: modification.NewRegistry(), Calculator: mass.NewCalculator()}
	_, err := deps.Registry.AddOrMerge(
		modification.NewDefinition('*', 79.966331, "STY", modification.Dynamic), false)
	require.NoError(t, err)

	rd, err := parser.NewReader(strings.NewReader("Scan\tCharge\tPeptide\tProtein\n42\t2\t" + peptideStr + "\tP1\n"))
	require.NoError(t, err)

	var out *pipeline.Result
	_, err = pipeline.ForEachResult(context.Background(), pipeline.Config{}, deps, rd, func(res *pipeline.Result) error {
		cp := *res
		out = &cp
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func TestSynopsisRowRoundTrip(t *testing.T) {
	res := resolveOne(t, "K.PEPT*IDE.R")
	row := ToAPIRow(res)

	assert.Equal(t, 42, row.Scan)
	assert.Equal(t, "PEPTIDE", row.CleanSequence)
	assert.Equal(t, 1, row.ModCount)
	assert.Equal(t, "Phosph:4", row.ModDescription)
	assert.InDelta(t, 879.326, row.MonoisotopicMass, 0.001)
	assert.InDelta(t, (879.326+2*mass.ProtonMass)/2, row.MZ, 0.001)

	// JSONL round-trip through the v1 schema.
	var buf bytes.Buffer
	jw := writers.NewJSONL[api.SynopsisRowV1](&buf)
	require.NoError(t, jw.Write(row))

	var back api.SynopsisRowV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, row, back)
}

func TestSynopsisWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	sw := NewSynopsisWriter(&buf, true)
	row := ToAPIRow(resolveOne(t, "K.PEPT*IDE.R"))
	require.NoError(t, sw.Write(row))
	require.NoError(t, sw.Write(row))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, SynopsisHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\t42\t2\tK.PEPT*IDE.R\tPEPTIDE\tK\tR\t"))
}

func TestSynopsisRowCarriesSourceFile(t *testing.T) {
	row := ToAPIRow(resolveOne(t, "K.PEPT*IDE.R"))
	row.SourceFile = "run1.tsv"

	line := FormatSynopsisRowTSV(row)
	assert.True(t, strings.HasSuffix(line, "\trun1.tsv"))
	assert.Equal(t, strings.Count(SynopsisHeader, "\t"), strings.Count(line, "\t"),
		"row and header column counts must agree")
}

func TestWriteModSummary(t *testing.T) {
	reg := modification.NewRegistry()
	def := modification.NewDefinition('*', 79.966331, "STY", modification.Dynamic)
	_, err := reg.AddOrMerge(def, false)
	require.NoError(t, err)
	def.OccurrenceCount = 7

	var buf bytes.Buffer
	require.NoError(t, WriteModSummary(&buf, reg, true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ModSummaryHeader, lines[0])
	assert.Equal(t, "*\t79.966331\tSTY\tD\tPhosph\t7", lines[1])
}
