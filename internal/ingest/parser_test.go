package ingest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "Reporting Period,Catalogue,ISRC,UPC Code,DSP,Territory,Count,Royalty ($US),Sale or Void\n"

func TestParseWellFormed(t *testing.T) {
	csv := sampleHeader +
		"2024-01,CAT1,USRC17607839,123456789012,Spotify,US,1500,10.50,Sale\n" +
		"2024-01,CAT2,USRC17607840,123456789013,Apple Music,GB,200,2.25,Void\n"

	res, err := Parse(strings.NewReader(csv), 0)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, "2024-01", first.ReportingPeriod)
	assert.Equal(t, "CAT1", first.Catalogue)
	assert.Equal(t, "USRC17607839", first.ISRC)
	assert.Equal(t, "123456789012", first.UPC)
	assert.Equal(t, "Spotify", first.DSP)
	assert.Equal(t, "US", first.Territory)
	assert.Equal(t, int64(1500), first.Count)
	assert.True(t, decimal.NewFromFloat(10.50).Equal(first.Royalty))
	assert.Equal(t, "Sale", first.SaleOrVoid)

	assert.Equal(t, "Void", res.Records[1].SaleOrVoid)
}

func TestParseSkipsColumnCountMismatch(t *testing.T) {
	csv := sampleHeader +
		"2024-01,CAT1,ISRC1,UPC1,Spotify,US,10,1.00,Sale\n" +
		"2024-01,CAT1,short-row\n" + // 3 columns, header has 9
		"2024-01,CAT1,ISRC2,UPC2,Deezer,FR,20,2.00,Sale\n"

	res, err := Parse(strings.NewReader(csv), 0)
	require.NoError(t, err)

	// A malformed row never aborts the batch.
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Records, 2)
}

func TestParseCoercionDefaults(t *testing.T) {
	csv := sampleHeader +
		"2024-02,CAT9,,,Spotify,DE,not-a-number,garbage,Sale\n"

	res, err := Parse(strings.NewReader(csv), 0)
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	rec := res.Records[0]
	assert.Equal(t, int64(0), rec.Count)
	assert.True(t, rec.Royalty.IsZero())
	assert.Equal(t, "", rec.ISRC)
	assert.Equal(t, "", rec.UPC)
}

func TestParseRowCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(sampleHeader)
	for i := 0; i < 10; i++ {
		b.WriteString("2024-01,CAT1,I,U,Spotify,US,1,0.10,Sale\n")
	}

	res, err := Parse(strings.NewReader(b.String()), 4)
	require.NoError(t, err)

	// Rows past the cap are silently not read, and not counted as skipped.
	assert.Equal(t, 4, res.Imported)
	assert.Equal(t, 0, res.Skipped)
}

func TestParseBOMHeader(t *testing.T) {
	csv := "\uFEFFCatalogue,Royalty ($US),Reporting Period,Sale or Void\n" +
		"CAT1,3.33,2024-03,Sale\n"

	res, err := Parse(strings.NewReader(csv), 0)
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)
	assert.Equal(t, "CAT1", res.Records[0].Catalogue)
	assert.True(t, decimal.RequireFromString("3.33").Equal(res.Records[0].Royalty))
}

func TestParseHeaderOnly(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleHeader), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 0, res.Skipped)
	assert.Empty(t, res.Records)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""), 0)
	assert.Error(t, err)
}
