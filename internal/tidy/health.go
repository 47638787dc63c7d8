package tidy

import "github.com/sells-group/climate-health-cli/internal/model"

// CausesOfDeath tidies the age-standardised causes-of-death extract
// (hlth_cd_asdr2 shape) into per-(region, year, ICD-10 group) rate records.
func CausesOfDeath(path string) ([]model.CauseRecord, *Report, error) {
	raw, rep, err := ReadEurostat(path)
	if err != nil {
		return nil, nil, err
	}

	records := make([]model.CauseRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, model.CauseRecord{
			Geo:        r.Geo,
			Year:       r.Year,
			Frequency:  r.Dims["freq"],
			UnitCode:   r.Dims["unit"],
			Sex:        r.Dims["sex"],
			AgeGroup:   r.Dims["age"],
			ICD10Group: r.Dims["icd10"],
			Rate:       r.Value,
		})
	}
	return records, rep, nil
}

// HospitalDischarges tidies the hospital discharges extract
// (hlth_co_disch1t shape) into per-(region, year, ICD-10 group) counts.
func HospitalDischarges(path string) ([]model.DischargeRecord, *Report, error) {
	raw, rep, err := ReadEurostat(path)
	if err != nil {
		return nil, nil, err
	}

	records := make([]model.DischargeRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, model.DischargeRecord{
			Geo:        r.Geo,
			Year:       r.Year,
			Frequency:  r.Dims["freq"],
			Indicator:  r.Dims["indic_he"],
			UnitCode:   r.Dims["unit"],
			Sex:        r.Dims["sex"],
			AgeGroup:   r.Dims["age"],
			ICD10Group: r.Dims["icd10"],
			Discharges: r.Value,
		})
	}
	return records, rep, nil
}
