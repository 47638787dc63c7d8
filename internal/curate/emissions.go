// Package curate builds the denormalized analytical table: aggregated
// emissions inner-joined to population, left-joined to the wide health
// pivots, plus the derived per-capita and per-100k columns.
package curate

import (
	"sort"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// EmissionsAgg is emissions collapsed to one row per (region, year): the
// total across all gases and sectors plus per-sector-group subtotals.
// Labels come from the first record seen for the key.
type EmissionsAgg struct {
	NUTSID      string
	Year        int
	NUTSLabel   string
	CountryISO  string
	CountryName string
	TotalKt     float64
	SectorKt    map[string]float64
}

// AggregateEmissions sums tidy emission records per (region, year) and per
// sector group within it. Output is sorted by region then year so downstream
// writes are deterministic.
func AggregateEmissions(records []model.EmissionRecord) []EmissionsAgg {
	byKey := make(map[model.RegionYear]*EmissionsAgg)
	var order []model.RegionYear
	for _, r := range records {
		key := r.Key()
		agg, ok := byKey[key]
		if !ok {
			agg = &EmissionsAgg{
				NUTSID:      r.NUTSID,
				Year:        r.Year,
				NUTSLabel:   r.NUTSLabel,
				CountryISO:  r.CountryISO,
				CountryName: r.CountryName,
				SectorKt:    make(map[string]float64),
			}
			byKey[key] = agg
			order = append(order, key)
		}
		agg.TotalKt += r.EmissionsKt
		agg.SectorKt[r.SectorGroup] += r.EmissionsKt
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].NUTSID != order[j].NUTSID {
			return order[i].NUTSID < order[j].NUTSID
		}
		return order[i].Year < order[j].Year
	})

	aggs := make([]EmissionsAgg, 0, len(order))
	for _, key := range order {
		aggs = append(aggs, *byKey[key])
	}
	return aggs
}

// SectorColumns returns the sorted union of sector groups present across
// the aggregates. It fixes the curated table's per-sector column set.
func SectorColumns(aggs []EmissionsAgg) []string {
	seen := make(map[string]bool)
	for _, a := range aggs {
		for group := range a.SectorKt {
			seen[group] = true
		}
	}
	groups := make([]string, 0, len(seen))
	for group := range seen {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}
