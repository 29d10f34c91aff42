package dvf

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

func TestReadExtract_GovernmentFormat(t *testing.T) {
	t.Parallel()

	// Shape produced by the original flattening script: every value a string.
	in := `[
	  {
	    "date_mutation": "02/05/2023",
	    "nature_mutation": "Vente",
	    "valeur_fonciere": "185000,00",
	    "code_postal": "72000",
	    "commune": "le mans",
	    "type_local": "Maison",
	    "surface_reelle_bati": "90",
	    "nombre_pieces_principales": "4",
	    "no_voie": "12",
	    "type_de_voie": "RUE",
	    "voie": "DES ACACIAS"
	  },
	  {
	    "nature_mutation": "Vente",
	    "valeur_fonciere": "n/a",
	    "code_postal": "72000",
	    "commune": "le mans",
	    "type_local": "Maison"
	  }
	]`

	sales, err := ReadExtract(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	s := sales[0]
	require.NotNil(t, s.MutationDate)
	assert.Equal(t, "2023-05-02", s.MutationDate.Format(time.DateOnly))
	assert.InDelta(t, 185000, s.Price.Value, 1e-9)
	assert.InDelta(t, 90, s.BuiltSurface.Value, 1e-9)
	assert.InDelta(t, 4, s.MainRooms.Value, 1e-9)
	assert.False(t, s.LandSurface.Valid)
	assert.Equal(t, "DES ACACIAS", s.Street)

	assert.Nil(t, sales[1].MutationDate)
	assert.False(t, sales[1].Price.Valid)
	assert.False(t, sales[1].BuiltSurface.Valid)
}

func TestReadExtract_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ReadExtract(strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding extract")
}

func TestWriteExtract(t *testing.T) {
	t.Parallel()

	d := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)
	sales := []domain.Sale{{
		MutationDate: &d,
		Nature:       "Vente",
		Price:        domain.NewAmount(185000),
		PostalCode:   "72000",
		Municipality: "le mans",
		PropertyKind: "Maison",
		BuiltSurface: domain.NewAmount(90),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteExtract(&buf, sales))

	assert.JSONEq(t, `[{
		"date_mutation": "2023-05-02",
		"nature_mutation": "Vente",
		"valeur_fonciere": 185000,
		"code_postal": "72000",
		"commune": "le mans",
		"type_local": "Maison",
		"surface_reelle_bati": 90
	}]`, buf.String())
}

func TestExtractFile_RoundTrip(t *testing.T) {
	t.Parallel()

	in, _, err := Parse(t.Context(), strings.NewReader(file(leMans, saintGeorges)), Filter{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dvf_72.json")
	require.NoError(t, WriteExtractFile(path, in))

	out, err := ReadExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadExtractFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadExtractFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening extract")
}
