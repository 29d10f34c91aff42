// Package domain defines the core business types for the DVF estimator.
package domain

import (
	"time"
)

// Condition is the owner-reported state of the property.
type Condition string

// Condition constants.
const (
	ConditionLikeNew   Condition = "like_new"
	ConditionGood      Condition = "good"
	ConditionSomeWork  Condition = "some_work"
	ConditionMajorWork Condition = "major_work"
	ConditionUnknown   Condition = ""
)

// Brightness is the owner-reported light exposure tier.
type Brightness string

// Brightness constants.
const (
	BrightnessDark       Brightness = "dark"
	BrightnessDim        Brightness = "dim"
	BrightnessStandard   Brightness = "standard"
	BrightnessBright     Brightness = "bright"
	BrightnessVeryBright Brightness = "very_bright"
	BrightnessUnknown    Brightness = ""
)

// Noise is the owner-reported noise exposure tier.
type Noise string

// Noise constants.
const (
	NoiseVeryNoisy Noise = "very_noisy"
	NoiseNoisy     Noise = "noisy"
	NoiseStandard  Noise = "standard"
	NoiseQuiet     Noise = "quiet"
	NoiseVeryQuiet Noise = "very_quiet"
	NoiseUnknown   Noise = ""
)

// NatureSale is the DVF mutation nature for an ordinary sale.
const NatureSale = "vente"

// Sale is one historical DVF transaction row. JSON field names follow the
// flattened government extract so extracts stay interchangeable.
type Sale struct {
	ID           int64      `json:"id,omitempty"                        db:"id"`
	MutationDate *time.Time `json:"date_mutation,omitempty"             db:"date_mutation"`
	Nature       string     `json:"nature_mutation"                     db:"nature_mutation"`
	Price        Amount     `json:"valeur_fonciere"                     db:"valeur_fonciere"`
	StreetNumber string     `json:"no_voie,omitempty"                   db:"no_voie"`
	StreetType   string     `json:"type_de_voie,omitempty"              db:"type_de_voie"`
	Street       string     `json:"voie,omitempty"                      db:"voie"`
	PostalCode   string     `json:"code_postal"                         db:"code_postal"`
	Municipality string     `json:"commune"                             db:"commune"`
	PropertyKind string     `json:"type_local"                          db:"type_local"`
	BuiltSurface Amount     `json:"surface_reelle_bati"                 db:"surface_reelle_bati"`
	MainRooms    Amount     `json:"nombre_pieces_principales,omitzero"  db:"nombre_pieces_principales"`
	LandSurface  Amount     `json:"surface_terrain,omitzero"            db:"surface_terrain"`
}

// PricePerM2 returns price divided by built surface, or 0 when either
// amount is unusable.
func (s *Sale) PricePerM2() float64 {
	if !s.Price.Valid || !s.BuiltSurface.Valid || s.BuiltSurface.Value == 0 {
		return 0
	}
	return s.Price.Value / s.BuiltSurface.Value
}

// ValuationQuery describes the property to estimate. Values are assumed to be
// type-correct already; only business thresholds are checked by the engine.
type ValuationQuery struct {
	Address      string `json:"address,omitempty" validate:"max=100"`
	PostalCode   string `json:"postal_code"       validate:"required,postcode"`
	Municipality string `json:"municipality"      validate:"required,max=100"`
	PropertyKind string `json:"property_kind"     validate:"required,max=50"`

	SurfaceM2          float64  `json:"surface_m2"`
	TotalLandSurfaceM2 *float64 `json:"total_land_surface_m2,omitempty"`
	BuildableSurfaceM2 *float64 `json:"buildable_surface_m2,omitempty"`

	Condition  Condition  `json:"condition,omitempty"`
	Brightness Brightness `json:"brightness,omitempty"`
	Noise      Noise      `json:"noise,omitempty"`

	Pool            bool  `json:"pool,omitempty"`
	Sewer           *bool `json:"sewer,omitempty"`
	ExceptionalView bool  `json:"exceptional_view,omitempty"`
	PartyWalls      bool  `json:"party_walls,omitempty"`
	Basement        bool  `json:"basement,omitempty"`
	ParkingSpots    *int  `json:"parking_spots,omitempty"`
	Outbuildings    *int  `json:"outbuildings,omitempty"`

	// Collected by the form but not consulted by the engine.
	Rooms              *int   `json:"rooms,omitempty"`
	Bathrooms          *int   `json:"bathrooms,omitempty"`
	Levels             *int   `json:"levels,omitempty"`
	YearBuilt          *int   `json:"year_built,omitempty"`
	DPE                string `json:"dpe,omitempty"`
	HouseQuality       string `json:"house_quality,omitempty"`
	TransportProximity string `json:"transport_proximity,omitempty"`
	RoofQuality        string `json:"roof_quality,omitempty"`
	Occupation         string `json:"occupation,omitempty"`
	Urgency            string `json:"urgency,omitempty"`
}

// Valuation is the engine output for a successful estimate.
type Valuation struct {
	EstimatedPrice    int64 `json:"estimated_price"      doc:"Estimated seller-facing price in EUR"`
	ComparableCount   int   `json:"comparable_count"     doc:"Comparable sales kept after outlier removal"`
	AveragePricePerM2 int64 `json:"average_price_per_m2" doc:"Reference price per m2 in EUR"`
}

// Lead holds the contact details submitted alongside an estimate request.
type Lead struct {
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,frphone"`
}

// ImportRun records a single DVF corpus import.
type ImportRun struct {
	ID           string     `json:"id"                      db:"id"`
	Source       string     `json:"source"                  db:"source"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}

// Import run statuses.
const (
	ImportRunning   = "running"
	ImportSucceeded = "succeeded"
	ImportFailed    = "failed"
)

// CorpusStats summarizes the transaction corpus, mirroring the data quality
// report produced after an import.
type CorpusStats struct {
	TotalSales     int        `json:"total_sales"`
	PostalCodes    int        `json:"postal_codes"`
	MissingPrice   int        `json:"missing_price"`
	MissingSurface int        `json:"missing_surface"`
	FirstMutation  *time.Time `json:"first_mutation,omitempty"`
	LastMutation   *time.Time `json:"last_mutation,omitempty"`
}
