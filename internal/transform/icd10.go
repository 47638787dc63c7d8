package transform

import (
	"fmt"
	"strings"
)

// ICD10Class is the derived classification of an ICD-10 group code.
// Category is empty when no rule assigns one.
type ICD10Class struct {
	Name        string
	Category    string
	Description string
	Respiratory bool
}

// Category labels for ICD-10 chapters and aggregates.
const (
	CatAllCauses         = "all_causes"
	CatAllConditions     = "all_conditions"
	CatAllRespiratory    = "all_respiratory"
	CatRespiratory       = "respiratory"
	CatInfectious        = "infectious"
	CatNeoplasms         = "neoplasms"
	CatBloodImmune       = "blood_immune"
	CatEndocrine         = "endocrine_metabolic"
	CatMentalBehavioural = "mental_behavioural"
	CatNervousSystem     = "nervous_system"
	CatEyeAdnexa         = "eye_adnexa"
	CatEarMastoid        = "ear_mastoid"
	CatCirculatory       = "circulatory"
	CatDigestive         = "digestive"
	CatSkinSubcutaneous  = "skin_subcutaneous"
	CatMusculoskeletal   = "musculoskeletal"
	CatGenitourinary     = "genitourinary"
	CatPregnancy         = "pregnancy_childbirth"
	CatPerinatal         = "perinatal"
	CatCongenital        = "congenital"
	CatSymptomsSigns     = "symptoms_signs"
	CatInjuryPoisoning   = "injury_poisoning"
	CatHealthFactors     = "health_factors"
	CatExternalCauses    = "external_causes"
)

// icd10Rule is one entry of the ordered classification cascade. match sees
// the raw code and the base code (raw minus any "_OTH" suffix). Either name
// is fixed (optionally suffixed " (other)" when markOther and the suffix was
// stripped) or namef builds it from the raw code.
type icd10Rule struct {
	match     func(code, base string) bool
	name      string
	namef     func(code string) string
	category  string
	markOther bool
}

func baseEq(values ...string) func(code, base string) bool {
	return func(_, base string) bool {
		for _, v := range values {
			if base == v {
				return true
			}
		}
		return false
	}
}

func basePrefix(p string) func(code, base string) bool {
	return func(_, base string) bool { return strings.HasPrefix(base, p) }
}

func baseContains(sub string) func(code, base string) bool {
	return func(_, base string) bool { return strings.Contains(base, sub) }
}

func baseLetter(letters ...string) func(code, base string) bool {
	return func(_, base string) bool {
		for _, l := range letters {
			if strings.HasPrefix(base, l) {
				return true
			}
		}
		return false
	}
}

// hRange matches H codes whose two-digit block falls in [lo, hi].
func hRange(lo, hi int) func(code, base string) bool {
	return func(_, base string) bool {
		if len(base) < 3 || base[0] != 'H' {
			return false
		}
		d1, d2 := base[1], base[2]
		if d1 < '0' || d1 > '9' || d2 < '0' || d2 > '9' {
			return false
		}
		n := int(d1-'0')*10 + int(d2-'0')
		return n >= lo && n <= hi
	}
}

func codeName(code string) string { return code }

func parenName(format string) func(code string) string {
	return func(code string) string { return fmt.Sprintf(format, code) }
}

// icd10Rules is evaluated in priority order: aggregate codes first, then the
// known respiratory and infectious ranges, then single-letter chapter rules.
// The first match wins; the chapter catch-alls absorb any label starting
// with their letter, so non-ICD labels like "ACC" classify as infectious.
var icd10Rules = []icd10Rule{
	// Aggregates must precede every letter-prefix rule.
	{match: func(code, _ string) bool { return code == "A-R_V-Y" },
		name: "All causes of death", category: CatAllCauses},
	{match: func(code, _ string) bool { return strings.HasPrefix(code, "A-T_Z") },
		namef: allConditionsName, category: CatAllConditions},
	{match: func(code, _ string) bool { return code == "J" },
		name: "All respiratory diseases", category: CatAllRespiratory},
	{match: func(code, _ string) bool { return code == "J_OTH" },
		name: "Other respiratory conditions", category: CatAllRespiratory},

	// Respiratory ranges (J00-J99).
	{match: baseEq("J00-J11"), name: "Acute upper respiratory infections", category: CatRespiratory, markOther: true},
	{match: baseEq("J12-J18"), name: "Pneumonia", category: CatRespiratory, markOther: true},
	{match: baseEq("J20-J22"), name: "Other acute lower respiratory infections", category: CatRespiratory, markOther: true},
	{match: baseEq("J40-J44", "J40-J44_J47"), name: "Chronic lower respiratory diseases (COPD)", category: CatRespiratory, markOther: true},
	{match: baseEq("J45_J46"), name: "Asthma", category: CatRespiratory, markOther: true},
	{match: baseEq("J60-J99"), name: "Other respiratory diseases", category: CatRespiratory, markOther: true},
	{match: baseLetter("J"), namef: parenName("Respiratory disease (%s)"), category: CatRespiratory},

	// Infectious and parasitic (A00-B99).
	{match: basePrefix("A00-A08"), name: "Intestinal infectious diseases", category: CatInfectious, markOther: true},
	{match: basePrefix("A09"), name: "Other gastroenteritis and colitis", category: CatInfectious, markOther: true},
	{match: baseContains("A15-A19"), name: "Tuberculosis", category: CatInfectious, markOther: true},
	{match: basePrefix("A40_A41"), name: "Sepsis", category: CatInfectious, markOther: true},
	{match: baseContains("B15-B19"), name: "Viral hepatitis", category: CatInfectious, markOther: true},
	{match: basePrefix("B20-B24"), name: "HIV disease", category: CatInfectious, markOther: true},
	{match: baseLetter("A", "B"), namef: parenName("Infectious disease (%s)"), category: CatInfectious},

	// Neoplasms (C00-D49) and blood/immune (D50-D89): the D chapter splits
	// on code length, matching the source classification.
	{match: baseEq("C"), name: "All neoplasms", category: CatNeoplasms},
	{match: baseLetter("C"), namef: parenName("Neoplasm (%s)"), category: CatNeoplasms},
	{match: func(_, base string) bool { return strings.HasPrefix(base, "D") && len(base) <= 3 },
		namef: parenName("Neoplasm (%s)"), category: CatNeoplasms},
	{match: baseLetter("D"), namef: parenName("Neoplasm (%s)"), category: CatBloodImmune},

	{match: baseLetter("E"), namef: codeName, category: CatEndocrine},
	{match: baseLetter("F"), namef: codeName, category: CatMentalBehavioural},
	{match: baseLetter("G"), namef: codeName, category: CatNervousSystem},

	// Eye (H00-H59) vs ear (H60-H95): range labels or a numeric block.
	{match: func(code, base string) bool { return strings.HasPrefix(base, "H00-H59") || hRange(0, 59)(code, base) },
		name: "Diseases of eye and adnexa", category: CatEyeAdnexa, markOther: true},
	{match: func(code, base string) bool { return strings.HasPrefix(base, "H60-H95") || hRange(60, 95)(code, base) },
		name: "Diseases of ear and mastoid process", category: CatEarMastoid, markOther: true},

	// Circulatory (I00-I99).
	{match: baseEq("I"), name: "All circulatory diseases", category: CatCirculatory},
	{match: basePrefix("I20-I25"), name: "Ischaemic heart diseases", category: CatCirculatory, markOther: true},
	{match: basePrefix("I60-I69"), name: "Cerebrovascular diseases", category: CatCirculatory, markOther: true},
	{match: baseLetter("I"), namef: parenName("Circulatory disease (%s)"), category: CatCirculatory},

	{match: baseLetter("K"), namef: parenName("Digestive disease (%s)"), category: CatDigestive},
	{match: baseLetter("L"), namef: parenName("Diseases of skin and subcutaneous tissue (%s)"), category: CatSkinSubcutaneous},
	{match: baseLetter("M"), namef: parenName("Diseases of musculoskeletal system (%s)"), category: CatMusculoskeletal},
	{match: baseLetter("N"), namef: parenName("Diseases of genitourinary system (%s)"), category: CatGenitourinary},
	{match: baseLetter("O"), namef: parenName("Pregnancy, childbirth and puerperium (%s)"), category: CatPregnancy},
	{match: baseLetter("P"), namef: parenName("Conditions originating in perinatal period (%s)"), category: CatPerinatal},
	{match: baseLetter("Q"), namef: parenName("Congenital malformations (%s)"), category: CatCongenital},
	{match: baseLetter("R"), namef: parenName("Symptoms, signs and abnormal findings (%s)"), category: CatSymptomsSigns},
	{match: baseLetter("S", "T"), namef: parenName("Injury, poisoning and external causes (%s)"), category: CatInjuryPoisoning},
	{match: baseLetter("Z"), namef: parenName("Factors influencing health status (%s)"), category: CatHealthFactors},
	{match: baseLetter("V", "W", "X", "Y"), namef: codeName, category: CatExternalCauses},
}

func allConditionsName(code string) string {
	name := "All diseases and health factors (A-T, Z)"
	if len(code) > 5 {
		name += " - " + code[6:]
	}
	return name
}

// ClassifyICD10 resolves an ICD-10 group code to its display name, category
// and description. The cascade is total: unmatched codes keep the code as
// the literal name with no category.
func ClassifyICD10(code string) ICD10Class {
	code = strings.TrimSpace(code)
	base, other := strings.CutSuffix(code, "_OTH")

	cls := ICD10Class{
		Name:        code,
		Respiratory: strings.HasPrefix(code, "J"),
	}

	for _, r := range icd10Rules {
		if !r.match(code, base) {
			continue
		}
		if r.namef != nil {
			cls.Name = r.namef(code)
		} else {
			cls.Name = r.name
			if r.markOther && other {
				cls.Name += " (other)"
			}
		}
		cls.Category = r.category
		break
	}

	cls.Description = cls.Name
	if cls.Category != "" {
		cls.Description = fmt.Sprintf("%s (%s)", cls.Name, strings.ReplaceAll(cls.Category, "_", " "))
	}
	return cls
}
