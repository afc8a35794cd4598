package container

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(categoriesFile string) *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ";"
	cfg.CSV.InputDateLayout = "02 Jan 2006"
	cfg.CSV.ExportDateLayout = "02/01/2006"
	cfg.Categories.File = categoriesFile
	cfg.Report.Currency = "AED"
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig(filepath.Join(t.TempDir(), "categories.json")),
		},
		{
			name: "json logging",
			config: func() *config.Config {
				cfg := testConfig(filepath.Join(t.TempDir(), "categories.yaml"))
				cfg.Log.Level = "debug"
				cfg.Log.Format = "json"
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetCategorizer())
			assert.NotNil(t, c.GetLearner())
			assert.NotNil(t, c.GetParser())
			assert.NotNil(t, c.GetCSVHandler())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWithLogger_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(testConfig("categories.json"), nil)
	assert.Error(t, err)
}

func TestContainer_SharesOneStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Food": ["starbucks"], "Uncategorized": []}`), 0600))

	c, err := NewContainerWithLogger(testConfig(path), logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, path, c.GetStore().Path())
	assert.Equal(t, "Food", c.GetCategorizer().Classify("STARBUCKS JLT"))

	changed, err := c.GetLearner().Learn("Food", "WHOLEFOODS #123")
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, "Food", c.GetCategorizer().Classify("WHOLEFOODS #123"),
		"categorizer must see keywords learned through the same store")
}

func TestContainer_WiresConfiguredFormats(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(filepath.Join(t.TempDir(), "categories.json")), logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, ';', c.GetCSVHandler().Delimiter())

	txs, err := c.GetParser().Parse(strings.NewReader("Date,Details,Amount,Debit/Credit\n05 Mar 2024,DEWA,10,Debit\n"))
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
