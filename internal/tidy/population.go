package tidy

import "github.com/sells-group/climate-health-cli/internal/model"

// Population filter keys: annual frequency, both sexes, plain number unit,
// all-ages total.
const (
	popFreq = "A"
	popSex  = "T"
	popUnit = "NR"
	popAge  = "TOTAL"
)

// Population tidies the population extract (demo_r_pjangrp3 shape),
// keeping only the annual both-sexes all-ages totals. Non-positive counts
// are dropped: every derived per-capita metric divides by this value.
func Population(path string) ([]model.PopulationRecord, *Report, error) {
	raw, rep, err := ReadEurostat(path)
	if err != nil {
		return nil, nil, err
	}

	var records []model.PopulationRecord
	for _, r := range raw {
		if r.Dims["freq"] != popFreq || r.Dims["sex"] != popSex ||
			r.Dims["unit"] != popUnit || r.Dims["age"] != popAge {
			rep.RowsOut--
			rep.drop("out_of_scope")
			continue
		}
		if r.Value <= 0 {
			rep.RowsOut--
			rep.drop("non_positive_population")
			continue
		}
		records = append(records, model.PopulationRecord{
			Geo:        r.Geo,
			Year:       r.Year,
			Population: r.Value,
		})
	}
	return records, rep, nil
}
