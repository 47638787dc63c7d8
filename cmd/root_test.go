package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{
		"ingest-emissions", "ingest-health", "ingest-population",
		"curate", "load", "status",
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "climhealth", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestIngestEmissionsCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"workbook", "output", "sector-groups"} {
		flag := ingestEmissionsCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "ingest-emissions should have --%s flag", flagName)
	}
}

func TestCurateCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"emissions", "causes", "discharges", "population", "output"} {
		flag := curateCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "curate should have --%s flag", flagName)
	}
}

func TestLoadCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"driver", "db", "nuts2-only"} {
		flag := loadCmd.Flags().Lookup(flagName)
		require.NotNil(t, flag, "load should have --%s flag", flagName)
	}
	flag := loadCmd.Flags().Lookup("nuts2-only")
	assert.Equal(t, "false", flag.DefValue)
}

func TestStatusCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"driver", "db"} {
		flag := statusCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "status should have --%s flag", flagName)
	}
}
