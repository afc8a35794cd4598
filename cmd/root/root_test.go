package root_test

import (
	"testing"

	"fjacquet/budget-csv/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget-csv", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Categorize bank transaction exports")
	assert.True(t, root.Cmd.SilenceUsage)
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	tests := []struct {
		name      string
		shorthand string
	}{
		{name: "input", shorthand: "i"},
		{name: "output", shorthand: "o"},
		{name: "categories"},
		{name: "log-level"},
		{name: "log-format"},
		{name: "csv-delimiter"},
		{name: "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

func TestGetContainer_BeforeSetup(t *testing.T) {
	_, err := root.GetContainer()
	assert.Error(t, err)
}

func TestLogDefault(t *testing.T) {
	assert.NotNil(t, root.Log)
}
