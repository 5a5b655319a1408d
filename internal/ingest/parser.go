package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"royalty-core/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultMaxRows bounds memory for a single upload. Rows past the cap are
// silently not read (they do not count as skipped).
const DefaultMaxRows = 100000

// Result is what one parse pass produces. Malformed rows never abort the
// batch: they are counted in Skipped and parsing continues.
type Result struct {
	Records  []model.EarningsRecord
	Imported int
	Skipped  int
}

// Column aliases: first matching normalized key wins.
var (
	periodKeys    = []string{"reporting_period", "period", "reporting_month"}
	catalogueKeys = []string{"catalogue", "catalogue_number", "catalog", "catalog_number"}
	isrcKeys      = []string{"isrc", "isrc_code"}
	upcKeys       = []string{"upc", "upc_code"}
	dspKeys       = []string{"dsp", "store", "platform"}
	territoryKeys = []string{"territory", "country", "country_of_sale"}
	countKeys     = []string{"count", "quantity", "streams"}
	royaltyKeys   = []string{"royalty", "royalty_amount", "net_royalty"}
	saleVoidKeys  = []string{"sale_or_void", "sale_void", "transaction_type"}
)

// Parse reads a comma-separated stream with a header row and coerces each
// row into a canonical EarningsRecord. A row whose column count differs from
// the header's is skipped and counted. maxRows <= 0 applies DefaultMaxRows.
func Parse(r io.Reader, maxRows int) (*Result, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column-count policy is ours, not the reader's
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	keys := NormalizeHeaderRow(header)
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}

	res := &Result{}
	read := 0
	for read < maxRows {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A row the csv layer cannot frame is malformed, same policy
			// as a column-count mismatch.
			read++
			res.Skipped++
			continue
		}
		read++

		if len(row) != len(header) {
			res.Skipped++
			continue
		}

		res.Records = append(res.Records, coerceRow(row, index))
		res.Imported++
	}

	return res, nil
}

func coerceRow(row []string, index map[string]int) model.EarningsRecord {
	return model.EarningsRecord{
		ReportingPeriod: field(row, index, periodKeys),
		Catalogue:       field(row, index, catalogueKeys),
		ISRC:            field(row, index, isrcKeys),
		UPC:             field(row, index, upcKeys),
		DSP:             field(row, index, dspKeys),
		Territory:       field(row, index, territoryKeys),
		Count:           intField(row, index, countKeys),
		Royalty:         decimalField(row, index, royaltyKeys),
		SaleOrVoid:      field(row, index, saleVoidKeys),
	}
}

func field(row []string, index map[string]int, aliases []string) string {
	for _, k := range aliases {
		if i, ok := index[k]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}

// intField coerces to int64, defaulting to 0 on a missing or invalid cell.
func intField(row []string, index map[string]int, aliases []string) int64 {
	v := field(row, index, aliases)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// decimalField coerces to decimal, defaulting to 0 on a missing or invalid cell.
func decimalField(row []string, index map[string]int, aliases []string) decimal.Decimal {
	v := field(row, index, aliases)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
