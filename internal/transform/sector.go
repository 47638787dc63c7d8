package transform

// SectorGroupOther is the bucket for sector codes with no mapping.
const SectorGroupOther = "other"

// DefaultSectorGroups maps EDGAR sector codes to coarse sector groups.
// Domestic aviation and shipping both fold into transport.
var DefaultSectorGroups = map[string]string{
	"Agriculture": "agriculture",
	"Buildings":   "buildings",
	"Energy":      "energy",
	"Industry":    "industry",
	"Transport":   "transport",
	"Dom_Avi":     "transport",
	"Dom_Ship":    "transport",
	"Waste":       "waste",
}

// GroupSector maps a raw sector code to its coarse group. A nil groups map
// uses DefaultSectorGroups; unmapped codes fall back to "other".
func GroupSector(sector string, groups map[string]string) string {
	if groups == nil {
		groups = DefaultSectorGroups
	}
	if g, ok := groups[sector]; ok {
		return g
	}
	return SectorGroupOther
}
