package tidy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadSectorGroups reads an optional YAML file mapping raw sector codes to
// coarse sector groups, replacing the built-in default mapping.
func LoadSectorGroups(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tidy: read sector groups %s", path)
	}

	groups := make(map[string]string)
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, eris.Wrapf(err, "tidy: parse sector groups %s", path)
	}
	return groups, nil
}
