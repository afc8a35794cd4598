package parser

import (
	"testing"

	"fjacquet/budget-csv/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		base := NewBaseParser(mockLog)
		assert.Same(t, mockLog, base.GetLogger())
	})

	t.Run("with nil logger", func(t *testing.T) {
		base := NewBaseParser(nil)
		assert.NotNil(t, base.GetLogger())
	})
}
