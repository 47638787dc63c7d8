// Package warehouse builds the star schema in memory and replace-loads it
// into SQLite or Postgres. Surrogate keys are assigned during the build, so
// every fact row arrives at the database already resolved.
package warehouse

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/climate-health-cli/internal/model"
	"github.com/sells-group/climate-health-cli/internal/transform"
)

// BuildOptions configures the star build.
type BuildOptions struct {
	// NUTS2Only keeps only level-2 regions in the geography dimension.
	// Fact rows for other levels then fail key resolution and drop.
	NUTS2Only bool
}

// Health fact filter keys: annual frequency, both sexes, all-ages total.
// The tidy tables keep every slice; the warehouse stores one.
const (
	factFreq = "A"
	factSex  = "T"
	factAge  = "TOTAL"
)

// BuildStar resolves the four tidy tables into dimensions and facts. Fact
// rows whose region is absent from the geography dimension drop; duplicate
// composite keys collapse to the last value seen.
func BuildStar(
	emissions []model.EmissionRecord,
	causes []model.CauseRecord,
	discharges []model.DischargeRecord,
	population []model.PopulationRecord,
	opts BuildOptions,
) (*model.Star, *model.BuildReport) {
	causes = filterHealth(causes, func(r model.CauseRecord) (string, string, string) {
		return r.Frequency, r.Sex, r.AgeGroup
	})
	discharges = filterHealth(discharges, func(r model.DischargeRecord) (string, string, string) {
		return r.Frequency, r.Sex, r.AgeGroup
	})

	star := &model.Star{}
	rep := &model.BuildReport{}

	geoIDs := buildGeography(star, rep, emissions, causes, discharges, population, opts)
	timeIDs := buildTime(star, emissions, causes, discharges, population)
	sectorIDs := buildSectors(star, emissions)
	gasIDs := buildGases(star, emissions)
	causeIDs := buildCauses(star, causes)
	dischargeIDs := buildDischargeTypes(star, discharges)

	// population first: discharge rates divide by it
	popByKey := make(map[[2]int64]float64)
	{
		type key = [2]int64
		seen := make(map[key]int)
		for _, r := range population {
			geoID, ok1 := geoIDs[r.Geo]
			timeID, ok2 := timeIDs[r.Year]
			if !ok1 || !ok2 {
				rep.PopulationDropped++
				continue
			}
			k := key{geoID, timeID}
			if i, dup := seen[k]; dup {
				star.Population[i].Population = r.Population
				rep.PopulationDeduped++
			} else {
				seen[k] = len(star.Population)
				star.Population = append(star.Population, model.PopulationFact{
					GeographyID: geoID, TimeID: timeID, Population: r.Population,
				})
			}
			popByKey[k] = r.Population
		}
	}

	{
		type key = [4]int64
		seen := make(map[key]int)
		for _, r := range emissions {
			geoID, ok1 := geoIDs[r.NUTSID]
			timeID, ok2 := timeIDs[r.Year]
			sectorID, ok3 := sectorIDs[r.Sector]
			gasID, ok4 := gasIDs[r.Gas]
			if !ok1 || !ok2 || !ok3 || !ok4 {
				rep.EmissionsDropped++
				continue
			}
			k := key{geoID, timeID, sectorID, gasID}
			if i, dup := seen[k]; dup {
				star.Emissions[i].EmissionsKt = r.EmissionsKt
				rep.EmissionsDeduped++
				continue
			}
			seen[k] = len(star.Emissions)
			star.Emissions = append(star.Emissions, model.EmissionFact{
				GeographyID: geoID, TimeID: timeID, SectorID: sectorID, GasID: gasID,
				EmissionsKt: r.EmissionsKt,
			})
		}
	}

	{
		type key = [3]int64
		seen := make(map[key]int)
		for _, r := range causes {
			geoID, ok1 := geoIDs[r.Geo]
			timeID, ok2 := timeIDs[r.Year]
			causeID, ok3 := causeIDs[r.ICD10Group]
			if !ok1 || !ok2 || !ok3 {
				rep.CausesDropped++
				continue
			}
			k := key{geoID, timeID, causeID}
			if i, dup := seen[k]; dup {
				star.CausesOfDeath[i].Rate = r.Rate
				rep.CausesDeduped++
				continue
			}
			seen[k] = len(star.CausesOfDeath)
			star.CausesOfDeath = append(star.CausesOfDeath, model.CauseFact{
				GeographyID: geoID, TimeID: timeID, CauseID: causeID, Rate: r.Rate,
			})
		}
	}

	{
		type key = [3]int64
		seen := make(map[key]int)
		for _, r := range discharges {
			geoID, ok1 := geoIDs[r.Geo]
			timeID, ok2 := timeIDs[r.Year]
			typeID, ok3 := dischargeIDs[r.ICD10Group]
			if !ok1 || !ok2 || !ok3 {
				rep.DischargesDropped++
				continue
			}
			fact := model.DischargeFact{
				GeographyID: geoID, TimeID: timeID, DischargeTypeID: typeID,
				Count: r.Discharges,
			}
			if pop, ok := popByKey[[2]int64{geoID, timeID}]; ok && pop > 0 {
				rate := math.Round(r.Discharges/pop*100000.0*100) / 100
				fact.RatePer100k = &rate
			}
			k := key{geoID, timeID, typeID}
			if i, dup := seen[k]; dup {
				star.Discharges[i] = fact
				rep.DischargesDeduped++
				continue
			}
			seen[k] = len(star.Discharges)
			star.Discharges = append(star.Discharges, fact)
		}
	}

	return star, rep
}

func filterHealth[T any](records []T, keys func(T) (freq, sex, age string)) []T {
	kept := records[:0:0]
	for _, r := range records {
		freq, sex, age := keys(r)
		if freq == factFreq && sex == factSex && age == factAge {
			kept = append(kept, r)
		}
	}
	return kept
}

// buildGeography unions region codes across all four tables. Emissions is
// the only source carrying country metadata; regions that never appear
// there end up without a country and drop.
func buildGeography(
	star *model.Star,
	rep *model.BuildReport,
	emissions []model.EmissionRecord,
	causes []model.CauseRecord,
	discharges []model.DischargeRecord,
	population []model.PopulationRecord,
	opts BuildOptions,
) map[string]int64 {
	type geoMeta struct {
		label, iso, country string
	}
	meta := make(map[string]geoMeta)
	for _, r := range emissions {
		if _, ok := meta[r.NUTSID]; !ok {
			meta[r.NUTSID] = geoMeta{r.NUTSLabel, r.CountryISO, r.CountryName}
		}
	}

	codes := make(map[string]bool, len(meta))
	for code := range meta {
		codes[code] = true
	}
	for _, r := range causes {
		codes[r.Geo] = true
	}
	for _, r := range discharges {
		codes[r.Geo] = true
	}
	for _, r := range population {
		codes[r.Geo] = true
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	ids := make(map[string]int64, len(sorted))
	for _, code := range sorted {
		level := transform.NUTSLevel(code)
		if opts.NUTS2Only && level != transform.LevelNUTS2 {
			rep.GeographyDropped++
			continue
		}
		m, hasMeta := meta[code]
		if !hasMeta || m.iso == "" {
			rep.GeographyDropped++
			continue
		}

		label := m.label
		if label == "" {
			if level == transform.LevelCountry && m.country != "" {
				label = m.country
			} else {
				label = code
			}
		}

		id := int64(len(star.Geography) + 1)
		star.Geography = append(star.Geography, model.GeographyDim{
			ID: id, NUTSID: code, NUTSLabel: label, NUTSLevel: level,
			CountryISO: m.iso, CountryName: m.country,
		})
		ids[code] = id
	}
	return ids
}

// buildTime covers the union of years in all four tables. The surrogate key
// is the year itself. Availability flags start false; the loader sets them
// from the fact tables.
func buildTime(
	star *model.Star,
	emissions []model.EmissionRecord,
	causes []model.CauseRecord,
	discharges []model.DischargeRecord,
	population []model.PopulationRecord,
) map[int]int64 {
	years := make(map[int]bool)
	for _, r := range emissions {
		years[r.Year] = true
	}
	for _, r := range causes {
		years[r.Year] = true
	}
	for _, r := range discharges {
		years[r.Year] = true
	}
	for _, r := range population {
		years[r.Year] = true
	}

	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	ids := make(map[int]int64, len(sorted))
	for _, y := range sorted {
		star.Time = append(star.Time, model.TimeDim{
			ID:         int64(y),
			Year:       y,
			Decade:     transform.Decade(y),
			YearLabel:  transform.YearLabel(y),
			IsLeapYear: transform.IsLeapYear(y),
			Quarter:    4,
		})
		ids[y] = int64(y)
	}
	return ids
}

func buildSectors(star *model.Star, emissions []model.EmissionRecord) map[string]int64 {
	groups := make(map[string]string)
	for _, r := range emissions {
		if _, ok := groups[r.Sector]; !ok {
			groups[r.Sector] = r.SectorGroup
		}
	}

	sorted := make([]string, 0, len(groups))
	for code := range groups {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	ids := make(map[string]int64, len(sorted))
	for _, code := range sorted {
		id := int64(len(star.Sectors) + 1)
		star.Sectors = append(star.Sectors, model.SectorDim{
			ID: id, Code: code, Name: code, Group: groups[code], IsActive: true,
		})
		ids[code] = id
	}
	return ids
}

func buildGases(star *model.Star, emissions []model.EmissionRecord) map[string]int64 {
	codes := make(map[string]bool)
	for _, r := range emissions {
		codes[r.Gas] = true
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	ids := make(map[string]int64, len(sorted))
	for _, code := range sorted {
		info := transform.ClassifyGas(code)
		dim := model.GasDim{
			ID:   int64(len(star.Gases) + 1),
			Code: code, Name: info.Name, IsActive: true,
		}
		if info.Known {
			formula, gwp := info.Formula, info.GWPAR5
			dim.Formula = &formula
			dim.GWPAR5 = &gwp
		}
		star.Gases = append(star.Gases, dim)
		ids[code] = dim.ID
	}
	return ids
}

func buildCauses(star *model.Star, causes []model.CauseRecord) map[string]int64 {
	codes := make(map[string]bool)
	for _, r := range causes {
		codes[r.ICD10Group] = true
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	ids := make(map[string]int64, len(sorted))
	for _, code := range sorted {
		class := transform.ClassifyICD10(code)
		dim := model.CauseDim{
			ID:            int64(len(star.Causes) + 1),
			Code:          code,
			Name:          class.Name,
			Description:   class.Description,
			IsRespiratory: strings.HasPrefix(code, "J"),
			IsActive:      true,
		}
		if class.Category != "" {
			category := class.Category
			dim.Category = &category
		}
		star.Causes = append(star.Causes, dim)
		ids[code] = dim.ID
	}
	return ids
}

func buildDischargeTypes(star *model.Star, discharges []model.DischargeRecord) map[string]int64 {
	codes := make(map[string]bool)
	for _, r := range discharges {
		codes[r.ICD10Group] = true
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	ids := make(map[string]int64, len(sorted))
	for _, code := range sorted {
		class := transform.ClassifyICD10(code)
		dim := model.DischargeTypeDim{
			ID:            int64(len(star.DischargeTypes) + 1),
			Code:          code,
			Name:          class.Name,
			ICD10Codes:    code,
			Description:   class.Description,
			IsRespiratory: strings.HasPrefix(code, "J"),
			IsActive:      true,
		}
		if class.Category != "" {
			category := class.Category
			dim.Category = &category
		}
		star.DischargeTypes = append(star.DischargeTypes, dim)
		ids[code] = dim.ID
	}
	return ids
}
