package model

// GeographyDim is one dim_geography row. The surrogate key is assigned in
// memory after filtering so the active row set gets dense, stable ids.
type GeographyDim struct {
	ID          int64
	NUTSID      string
	NUTSLabel   string
	NUTSLevel   int
	CountryISO  string
	CountryName string
}

// TimeDim is one dim_time row. The surrogate key equals the year.
// Availability flags start false and are back-filled by the loader once all
// fact tables are in place.
type TimeDim struct {
	ID         int64
	Year       int
	Decade     int
	YearLabel  string
	IsLeapYear bool
	Quarter    int // always 4: annual data

	EmissionsAvailable  bool
	HealthAvailable     bool
	PopulationAvailable bool
}

// SectorDim is one dim_sector row.
type SectorDim struct {
	ID          int64
	Code        string
	Name        string
	Group       string
	Description *string
	IsActive    bool
}

// GasDim is one dim_gas row. Formula and GWP are null for unknown gases.
type GasDim struct {
	ID       int64
	Code     string
	Name     string
	Formula  *string
	GWPAR5   *float64
	IsActive bool
}

// CauseDim is one dim_icd10_cod row.
type CauseDim struct {
	ID            int64
	Code          string
	Name          string
	Category      *string
	Description   string
	IsRespiratory bool
	IsActive      bool
}

// DischargeTypeDim is one dim_discharge_type row.
type DischargeTypeDim struct {
	ID            int64
	Code          string
	Name          string
	Category      *string
	ICD10Codes    string
	Description   string
	IsRespiratory bool
	IsActive      bool
}

// EmissionFact is one fact_emissions row.
type EmissionFact struct {
	GeographyID int64
	TimeID      int64
	SectorID    int64
	GasID       int64
	EmissionsKt float64
}

// CauseFact is one fact_causes_of_death row.
type CauseFact struct {
	GeographyID int64
	TimeID      int64
	CauseID     int64
	Rate        float64
}

// DischargeFact is one fact_hospital_discharges row. RatePer100k is null
// when no population fact exists for the same (region, period).
type DischargeFact struct {
	GeographyID     int64
	TimeID          int64
	DischargeTypeID int64
	Count           float64
	RatePer100k     *float64
}

// PopulationFact is one fact_population row.
type PopulationFact struct {
	GeographyID int64
	TimeID      int64
	Population  float64
}

// Star is a fully resolved star schema ready for a replace-load: every fact
// row already references a dimension surrogate key present in the bundle.
type Star struct {
	Geography      []GeographyDim
	Time           []TimeDim
	Sectors        []SectorDim
	Gases          []GasDim
	Causes         []CauseDim
	DischargeTypes []DischargeTypeDim

	Emissions     []EmissionFact
	CausesOfDeath []CauseFact
	Discharges    []DischargeFact
	Population    []PopulationFact
}

// BuildReport summarizes rows lost while resolving natural keys to surrogate
// keys. Drops are expected (referential-integrity guard), never fatal, and
// must be surfaced to the operator.
type BuildReport struct {
	GeographyDropped int // dim rows lost to missing country metadata

	EmissionsDropped  int // fact rows with unresolvable keys
	CausesDropped     int
	DischargesDropped int
	PopulationDropped int

	EmissionsDeduped  int // duplicate composite keys collapsed (last wins)
	CausesDeduped     int
	DischargesDeduped int
	PopulationDeduped int
}
