// Package dvf ingests the government "valeurs foncières" datasets into the
// sales corpus: it streams the pipe-separated TXT files, keeps residential
// sales for the configured departments and reads or writes the flattened
// JSON extract.
package dvf

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

// DateLayout is the date format of the government files.
const DateLayout = "02/01/2006"

// Column names after header normalization.
const (
	colDate         = "date_mutation"
	colNature       = "nature_mutation"
	colPrice        = "valeur_fonciere"
	colPostalCode   = "code_postal"
	colMunicipality = "commune"
	colKind         = "type_local"
	colSurface      = "surface_reelle_bati"
	colRooms        = "nombre_pieces_principales"
	colLand         = "surface_terrain"
	colStreetNumber = "no_voie"
	colStreetType   = "type_de_voie"
	colStreet       = "voie"
)

var keptColumns = map[string]bool{
	colDate:         true,
	colNature:       true,
	colPrice:        true,
	colPostalCode:   true,
	colMunicipality: true,
	colKind:         true,
	colSurface:      true,
	colRooms:        true,
	colLand:         true,
	colStreetNumber: true,
	colStreetType:   true,
	colStreet:       true,
}

// ErrMissingHeader is returned when a dataset has no header line.
var ErrMissingHeader = errors.New("dvf file has no header line")

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// maxLineSize bounds a single TXT line. Real lines stay well under 1 KiB.
const maxLineSize = 1 << 20

// Filter selects which rows of a dataset enter the corpus.
type Filter struct {
	// Departments are department codes ("72", "2A", "971"). Empty keeps all.
	Departments []string
}

func (f Filter) prefixes() []string {
	out := make([]string, 0, len(f.Departments))
	for _, d := range f.Departments {
		d = strings.ToUpper(strings.TrimSpace(d))
		if d == "2A" || d == "2B" {
			// Corsican postal codes start with 20.
			d = "20"
		}
		out = append(out, d)
	}
	return out
}

func (f Filter) keep(postalCode, nature string) bool {
	if !postalCodePattern.MatchString(postalCode) {
		return false
	}
	if !strings.EqualFold(nature, domain.NatureSale) {
		return false
	}
	prefixes := f.prefixes()
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(postalCode, p) {
			return true
		}
	}
	return false
}

// ParseStats summarizes one parsed dataset.
type ParseStats struct {
	Lines      int `json:"lines"`
	Kept       int `json:"kept"`
	Filtered   int `json:"filtered"`
	Duplicates int `json:"duplicates"`
}

// NormalizeHeader maps a TXT column title such as "Surface reelle bati" to
// its extract field name "surface_reelle_bati".
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(valuation.NormalizeMunicipality(h), " ", "_")
}

// Parse streams a pipe-separated DVF file and returns the kept sales,
// de-duplicated within the file on street address and built surface.
func Parse(ctx context.Context, r io.Reader, f Filter) ([]domain.Sale, ParseStats, error) {
	var (
		stats   ParseStats
		headers []string
		sales   []domain.Sale
		seen    = make(map[string]struct{})
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		cols := strings.Split(line, "|")

		if headers == nil {
			headers = make([]string, len(cols))
			for i, c := range cols {
				headers[i] = NormalizeHeader(c)
			}
			continue
		}

		stats.Lines++
		if stats.Lines%50000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		row := make(map[string]string, len(keptColumns))
		for i, h := range headers {
			if i >= len(cols) || !keptColumns[h] {
				continue
			}
			if v := strings.TrimSpace(cols[i]); v != "" {
				row[h] = v
			}
		}

		if !f.keep(row[colPostalCode], row[colNature]) {
			stats.Filtered++
			continue
		}

		sale := SaleFromRow(row)
		key := SaleKey(&sale, false)
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		sales = append(sales, sale)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading dvf file: %w", err)
	}
	if headers == nil {
		return nil, stats, ErrMissingHeader
	}

	stats.Kept = len(sales)
	return sales, stats, nil
}

// SaleFromRow converts a row keyed by normalized column names into a Sale.
// Unparseable numbers become invalid amounts and are excluded later by the
// valuation filter.
func SaleFromRow(row map[string]string) domain.Sale {
	s := domain.Sale{
		Nature:       row[colNature],
		Price:        domain.ParseAmount(row[colPrice]),
		StreetNumber: row[colStreetNumber],
		StreetType:   row[colStreetType],
		Street:       row[colStreet],
		PostalCode:   row[colPostalCode],
		Municipality: valuation.NormalizeMunicipality(row[colMunicipality]),
		PropertyKind: row[colKind],
		BuiltSurface: domain.ParseAmount(row[colSurface]),
		MainRooms:    domain.ParseAmount(row[colRooms]),
		LandSurface:  domain.ParseAmount(row[colLand]),
	}
	s.MutationDate = ParseDate(row[colDate])
	return s
}

// ParseDate accepts the government format as well as ISO dates. It returns
// nil for empty or malformed values.
func ParseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range []string{DateLayout, time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}

// SaleKey identifies a sale for de-duplication: street number, street type,
// street name and built surface, plus the mutation date when withDate is set.
func SaleKey(s *domain.Sale, withDate bool) string {
	parts := []string{s.StreetNumber, s.StreetType, s.Street, formatAmount(s.BuiltSurface)}
	if withDate {
		d := ""
		if s.MutationDate != nil {
			d = s.MutationDate.Format(time.DateOnly)
		}
		parts = append(parts, d)
	}
	return strings.Join(parts, "_")
}

func formatAmount(a domain.Amount) string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// Dedupe removes sales repeated across datasets, keeping the first
// occurrence. The key includes the mutation date so a property resold in a
// later year is kept.
func Dedupe(sales []domain.Sale) []domain.Sale {
	seen := make(map[string]struct{}, len(sales))
	out := make([]domain.Sale, 0, len(sales))
	for i := range sales {
		key := SaleKey(&sales[i], true)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sales[i])
	}
	return out
}
