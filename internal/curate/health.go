package curate

import "github.com/sells-group/climate-health-cli/internal/model"

// Health pivot filter keys: annual frequency, both sexes, all-ages total.
const (
	healthFreq = "A"
	healthSex  = "T"
	healthAge  = "TOTAL"
)

// metricColumn pairs an ICD-10 group code with the curated column it feeds.
// Order fixes column order in the curated output.
type metricColumn struct {
	Code   string
	Column string
}

// CauseRateColumns is the allow-list of cause-of-death groups carried into
// the curated table, as age-standardised rates per 100k.
var CauseRateColumns = []metricColumn{
	{"J", "cod_all_resp_rate"},
	{"J09-J11", "cod_influenza_rate"},
	{"J12-J18", "cod_pneumonia_rate"},
	{"J40-J44_J47", "cod_copd_rate"},
	{"J45_J46", "cod_asthma_rate"},
}

// DischargeColumns is the allow-list of hospital-discharge groups carried
// into the curated table, as raw counts. Each also gets a derived _per_100k
// column in the merge step.
var DischargeColumns = []metricColumn{
	{"J", "discharge_all_resp"},
	{"J00-J11", "discharge_upper_resp"},
	{"J12-J18", "discharge_pneumonia"},
	{"J20-J22", "discharge_bronchitis"},
	{"J40-J44_J47", "discharge_copd"},
	{"J45_J46", "discharge_asthma"},
	{"J60-J99", "discharge_other_resp"},
}

// PivotCauses reshapes tidy cause-of-death records into per-(region, year)
// wide metric maps. Duplicate observations for a cell average out.
func PivotCauses(records []model.CauseRecord) map[model.RegionYear]map[string]float64 {
	acc := newPivot(CauseRateColumns)
	for _, r := range records {
		if r.Frequency != healthFreq || r.Sex != healthSex || r.AgeGroup != healthAge {
			continue
		}
		acc.add(model.RegionYear{NUTSID: r.Geo, Year: r.Year}, r.ICD10Group, r.Rate)
	}
	return acc.result()
}

// PivotDischarges reshapes tidy discharge records the same way.
func PivotDischarges(records []model.DischargeRecord) map[model.RegionYear]map[string]float64 {
	acc := newPivot(DischargeColumns)
	for _, r := range records {
		if r.Frequency != healthFreq || r.Sex != healthSex || r.AgeGroup != healthAge {
			continue
		}
		acc.add(model.RegionYear{NUTSID: r.Geo, Year: r.Year}, r.ICD10Group, r.Discharges)
	}
	return acc.result()
}

type pivotCell struct {
	sum   float64
	count int
}

type pivot struct {
	columns map[string]string // ICD-10 group -> column
	cells   map[model.RegionYear]map[string]*pivotCell
}

func newPivot(allowed []metricColumn) *pivot {
	columns := make(map[string]string, len(allowed))
	for _, mc := range allowed {
		columns[mc.Code] = mc.Column
	}
	return &pivot{
		columns: columns,
		cells:   make(map[model.RegionYear]map[string]*pivotCell),
	}
}

func (p *pivot) add(key model.RegionYear, code string, value float64) {
	column, ok := p.columns[code]
	if !ok {
		return
	}
	row, ok := p.cells[key]
	if !ok {
		row = make(map[string]*pivotCell)
		p.cells[key] = row
	}
	cell, ok := row[column]
	if !ok {
		cell = &pivotCell{}
		row[column] = cell
	}
	cell.sum += value
	cell.count++
}

func (p *pivot) result() map[model.RegionYear]map[string]float64 {
	out := make(map[model.RegionYear]map[string]float64, len(p.cells))
	for key, row := range p.cells {
		metrics := make(map[string]float64, len(row))
		for column, cell := range row {
			metrics[column] = cell.sum / float64(cell.count)
		}
		out[key] = metrics
	}
	return out
}
