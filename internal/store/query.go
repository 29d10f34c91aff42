package store

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByDate  = "date"
	orderByPrice = "price"
	orderByRate  = "price_per_m2"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByDate:  "date_mutation DESC NULLS LAST, id",
	orderByPrice: "valeur_fonciere DESC NULLS LAST, id",
	orderByRate:  "(valeur_fonciere / NULLIF(surface_reelle_bati, 0)) DESC NULLS LAST, id",
}

const defaultOrderBy = "date_mutation DESC NULLS LAST, id"

const baseSalesSelect = `SELECT id, date_mutation, nature_mutation, valeur_fonciere,
	COALESCE(no_voie, ''), COALESCE(type_de_voie, ''), COALESCE(voie, ''),
	code_postal, commune, COALESCE(type_local, ''),
	surface_reelle_bati, nombre_pieces_principales, surface_terrain
FROM dvf_sales`

const countSalesSelect = "SELECT COUNT(*) FROM dvf_sales"

// SaleQuery defines optional filters for browsing the corpus.
type SaleQuery struct {
	PostalCode   *string
	Municipality *string // matched against the normalized commune
	PropertyKind *string // case-insensitive
	MinPrice     *float64
	MaxPrice     *float64
	Since        *time.Time
	Limit        int // default 50
	Offset       int
	OrderBy      string // "date", "price", "price_per_m2"
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a sale query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *SaleQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	add := func(format string, v any) {
		conditions = append(conditions, fmt.Sprintf(format, paramIdx))
		args = append(args, v)
		paramIdx++
	}

	if q.PostalCode != nil {
		add("code_postal = $%d", strings.TrimSpace(*q.PostalCode))
	}
	if q.Municipality != nil {
		add("commune = $%d", *q.Municipality)
	}
	if q.PropertyKind != nil {
		add("lower(type_local) = lower($%d)", strings.TrimSpace(*q.PropertyKind))
	}
	if q.MinPrice != nil {
		add("valeur_fonciere >= $%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add("valeur_fonciere <= $%d", *q.MaxPrice)
	}
	if q.Since != nil {
		add("date_mutation >= $%d", *q.Since)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[q.OrderBy]; ok {
		orderClause = col
	}

	limit, offset := q.page()

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseSalesSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countSalesSelect + whereClause

	return dataSQL, countSQL, args
}

func (q *SaleQuery) page() (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, max(q.Offset, 0)
}

// Matches reports whether s satisfies the filters of q. It mirrors the
// WHERE clause built by ToSQL for in-memory stores.
func (q *SaleQuery) Matches(s *domain.Sale) bool {
	if q.PostalCode != nil && s.PostalCode != strings.TrimSpace(*q.PostalCode) {
		return false
	}
	if q.Municipality != nil && s.Municipality != *q.Municipality {
		return false
	}
	if q.PropertyKind != nil &&
		!strings.EqualFold(s.PropertyKind, strings.TrimSpace(*q.PropertyKind)) {
		return false
	}
	if q.MinPrice != nil && (!s.Price.Valid || s.Price.Value < *q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && (!s.Price.Valid || s.Price.Value > *q.MaxPrice) {
		return false
	}
	if q.Since != nil && (s.MutationDate == nil || s.MutationDate.Before(*q.Since)) {
		return false
	}
	return true
}
