package dvf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// extractRow is one object of the flattened JSON extract. Dates are kept as
// strings so extracts written in the government "dd/mm/yyyy" format load as
// well as the ISO dates this package writes.
type extractRow struct {
	Date         string        `json:"date_mutation,omitempty"`
	Nature       string        `json:"nature_mutation"`
	Price        domain.Amount `json:"valeur_fonciere"`
	StreetNumber string        `json:"no_voie,omitempty"`
	StreetType   string        `json:"type_de_voie,omitempty"`
	Street       string        `json:"voie,omitempty"`
	PostalCode   string        `json:"code_postal"`
	Municipality string        `json:"commune"`
	PropertyKind string        `json:"type_local"`
	BuiltSurface domain.Amount `json:"surface_reelle_bati"`
	MainRooms    domain.Amount `json:"nombre_pieces_principales,omitzero"`
	LandSurface  domain.Amount `json:"surface_terrain,omitzero"`
}

func (r *extractRow) sale() domain.Sale {
	return domain.Sale{
		MutationDate: ParseDate(r.Date),
		Nature:       r.Nature,
		Price:        r.Price,
		StreetNumber: r.StreetNumber,
		StreetType:   r.StreetType,
		Street:       r.Street,
		PostalCode:   r.PostalCode,
		Municipality: r.Municipality,
		PropertyKind: r.PropertyKind,
		BuiltSurface: r.BuiltSurface,
		MainRooms:    r.MainRooms,
		LandSurface:  r.LandSurface,
	}
}

func rowFromSale(s *domain.Sale) extractRow {
	r := extractRow{
		Nature:       s.Nature,
		Price:        s.Price,
		StreetNumber: s.StreetNumber,
		StreetType:   s.StreetType,
		Street:       s.Street,
		PostalCode:   s.PostalCode,
		Municipality: s.Municipality,
		PropertyKind: s.PropertyKind,
		BuiltSurface: s.BuiltSurface,
		MainRooms:    s.MainRooms,
		LandSurface:  s.LandSurface,
	}
	if s.MutationDate != nil {
		r.Date = s.MutationDate.Format(time.DateOnly)
	}
	return r
}

// ReadExtract decodes a JSON array of sales.
func ReadExtract(r io.Reader) ([]domain.Sale, error) {
	var rows []extractRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding extract: %w", err)
	}
	sales := make([]domain.Sale, len(rows))
	for i := range rows {
		sales[i] = rows[i].sale()
	}
	return sales, nil
}

// WriteExtract encodes sales as an indented JSON array.
func WriteExtract(w io.Writer, sales []domain.Sale) error {
	rows := make([]extractRow, len(sales))
	for i := range sales {
		rows[i] = rowFromSale(&sales[i])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding extract: %w", err)
	}
	return nil
}

// ReadExtractFile reads the extract at path.
func ReadExtractFile(path string) ([]domain.Sale, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening extract: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return ReadExtract(f)
}

// WriteExtractFile writes the extract to path through a temporary file so a
// reader never sees a partial extract.
func WriteExtractFile(path string, sales []domain.Sale) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dvf-extract-*.json")
	if err != nil {
		return fmt.Errorf("creating extract: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if err := WriteExtract(tmp, sales); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing extract: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming extract: %w", err)
	}
	return nil
}
