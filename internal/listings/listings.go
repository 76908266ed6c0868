// Package listings reads batch input sheets: one listing per row with a
// name column and a location column, from CSV or XLSX.
package listings

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Header aliases recognized for each column, compared case-insensitively.
var (
	nameHeaders     = []string{"clinic_name", "name", "listing", "nombre", "clinica", "clínica"}
	locationHeaders = []string{"clinic_location", "location", "city", "ciudad", "ubicacion", "ubicación"}
)

// Options configures Read.
type Options struct {
	// Charset of CSV input, e.g. "windows-1252". Empty means UTF-8.
	Charset string
	// Delimiter of CSV input. Zero means ','.
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means the first.
	SheetName string
}

// Read loads listings from path, choosing the parser by extension. Rows
// missing either field are skipped.
func Read(ctx context.Context, path string, opts Options) ([]model.ListingRequest, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		if strings.EqualFold(filepath.Ext(path), ".tsv") && opts.Delimiter == 0 {
			opts.Delimiter = '\t'
		}
		rows, err = readCSVFile(ctx, path, opts)
	case ".xlsx":
		rows, err = readXLSX(path, opts.SheetName)
	default:
		return nil, eris.Errorf("listings: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// FromRows maps a header row plus data rows onto listing requests.
func FromRows(rows [][]string) ([]model.ListingRequest, error) {
	if len(rows) == 0 {
		return nil, eris.New("listings: input is empty")
	}

	nameIdx, locIdx := -1, -1
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch {
		case nameIdx < 0 && contains(nameHeaders, h):
			nameIdx = i
		case locIdx < 0 && contains(locationHeaders, h):
			locIdx = i
		}
	}
	if nameIdx < 0 || locIdx < 0 {
		return nil, eris.Errorf("listings: header %v must name a listing column and a location column", rows[0])
	}

	var out []model.ListingRequest
	for _, row := range rows[1:] {
		req := model.ListingRequest{Name: cell(row, nameIdx), Location: cell(row, locIdx)}
		if req.Validate() != nil {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
