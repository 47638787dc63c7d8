package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupSector(t *testing.T) {
	tests := []struct {
		sector string
		group  string
	}{
		{"Agriculture", "agriculture"},
		{"Buildings", "buildings"},
		{"Energy", "energy"},
		{"Industry", "industry"},
		{"Transport", "transport"},
		{"Dom_Avi", "transport"},
		{"Dom_Ship", "transport"},
		{"Waste", "waste"},
		{"Mystery", "other"},
		{"", "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.group, GroupSector(tt.sector, nil), "sector: %q", tt.sector)
	}
}

func TestGroupSectorOverride(t *testing.T) {
	groups := map[string]string{"Energy": "power"}
	assert.Equal(t, "power", GroupSector("Energy", groups))
	// An override map replaces the defaults entirely.
	assert.Equal(t, "other", GroupSector("Transport", groups))
}
