package curate

import "github.com/sells-group/climate-health-cli/internal/model"

// MergeReport counts (region, year) keys through the curated merge.
type MergeReport struct {
	KeysIn       int
	KeysOut      int
	NoPopulation int
}

// Merge joins the aggregated emissions against population and the wide
// health pivots. Emissions drive the key set; a key with no population is
// excluded because every derived metric divides by it. Health data is
// optional and stays absent rather than defaulting to zero.
func Merge(
	aggs []EmissionsAgg,
	population []model.PopulationRecord,
	causes map[model.RegionYear]map[string]float64,
	discharges map[model.RegionYear]map[string]float64,
) ([]model.CuratedRow, MergeReport) {
	// last record wins on duplicate keys
	pop := make(map[model.RegionYear]float64, len(population))
	for _, p := range population {
		pop[model.RegionYear{NUTSID: p.Geo, Year: p.Year}] = p.Population
	}

	rep := MergeReport{KeysIn: len(aggs)}
	rows := make([]model.CuratedRow, 0, len(aggs))
	for _, agg := range aggs {
		key := model.RegionYear{NUTSID: agg.NUTSID, Year: agg.Year}
		people, ok := pop[key]
		if !ok {
			rep.NoPopulation++
			continue
		}

		row := model.CuratedRow{
			NUTSID:           agg.NUTSID,
			Year:             agg.Year,
			NUTSLabel:        agg.NUTSLabel,
			CountryISO:       agg.CountryISO,
			CountryName:      agg.CountryName,
			TotalEmissionsKt: agg.TotalKt,
			SectorKt:         agg.SectorKt,
			Population:       people,
			PerCapitaTonnes:  agg.TotalKt * 1000.0 / people,
			CauseRates:       causes[key],
			DischargeCounts:  discharges[key],
		}
		if counts := discharges[key]; len(counts) > 0 {
			rates := make(map[string]float64, len(counts))
			for column, count := range counts {
				rates[column+"_per_100k"] = count / people * 100000.0
			}
			row.DischargeRates = rates
		}
		rows = append(rows, row)
		rep.KeysOut++
	}
	return rows, rep
}
