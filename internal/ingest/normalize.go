package ingest

import "strings"

// NormalizeHeader folds a raw CSV header cell into a stable snake_case key,
// so the same column survives formatting drift across DSP exporters:
//
//	"Royalty ($US)" -> "royalty"
//	"UPC Code"      -> "upc_code"
//	"Sale-or-Void"  -> "sale_or_void"
func NormalizeHeader(h string) string {
	// Leading BOM from Windows exports.
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.Trim(h, `"`)
	h = strings.ToLower(h)

	// Drop parenthetical suffixes such as currency markers.
	for {
		open := strings.Index(h, "(")
		if open < 0 {
			break
		}
		end := strings.Index(h[open:], ")")
		if end < 0 {
			h = h[:open]
			break
		}
		h = h[:open] + h[open+end+1:]
	}

	h = strings.TrimSpace(h)
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)

	// Keep [a-z0-9_] only, collapsing underscore runs.
	var b strings.Builder
	b.Grow(len(h))
	lastUnderscore := false
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '_':
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// NormalizeHeaderRow normalizes every cell of the header row.
func NormalizeHeaderRow(row []string) []string {
	keys := make([]string, len(row))
	for i, cell := range row {
		keys[i] = NormalizeHeader(cell)
	}
	return keys
}
