package model

// RegionYear is the natural composite key shared by every source table.
type RegionYear struct {
	NUTSID string
	Year   int
}

// EmissionRecord is one tidy observation from the EDGAR emissions workbook:
// a single (region, year, gas, sector) magnitude in kt CO2-equivalent.
type EmissionRecord struct {
	NUTSID      string
	NUTSLabel   string
	CountryISO  string
	CountryName string
	Year        int
	Gas         string
	Sector      string
	SectorGroup string
	EmissionsKt float64
}

// Key returns the record's (region, year) pair.
func (r EmissionRecord) Key() RegionYear { return RegionYear{r.NUTSID, r.Year} }

// CauseRecord is one tidy observation from the Eurostat causes-of-death
// table (hlth_cd_asdr2 shape).
type CauseRecord struct {
	Geo        string
	Year       int
	Frequency  string
	UnitCode   string
	Sex        string
	AgeGroup   string
	ICD10Group string
	Rate       float64 // age-standardised rate per 100k
}

// DischargeRecord is one tidy observation from the Eurostat hospital
// discharges table (hlth_co_disch1t shape).
type DischargeRecord struct {
	Geo        string
	Year       int
	Frequency  string
	Indicator  string
	UnitCode   string
	Sex        string
	AgeGroup   string
	ICD10Group string
	Discharges float64
}

// PopulationRecord is one tidy (region, year) population count.
type PopulationRecord struct {
	Geo        string
	Year       int
	Population float64
}

// CuratedRow is one denormalized row of the analytical table: exactly one
// row per (nuts_id, year). Health metrics are keyed by curated column name;
// a missing key means "no recorded value", not zero.
type CuratedRow struct {
	NUTSID      string
	Year        int
	NUTSLabel   string
	CountryISO  string
	CountryName string

	TotalEmissionsKt float64
	SectorKt         map[string]float64 // sector group -> summed kt
	Population       float64
	PerCapitaTonnes  float64

	CauseRates      map[string]float64 // cod_*_rate columns
	DischargeCounts map[string]float64 // discharge_* columns
	DischargeRates  map[string]float64 // discharge_*_per_100k columns
}
