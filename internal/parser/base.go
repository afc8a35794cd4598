package parser

import (
	"fjacquet/budget-csv/internal/logging"
)

// BaseParser carries the logger shared by parser implementations. Embed it:
//
//	type MyParser struct {
//		parser.BaseParser
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser returns a BaseParser using logger, or a default logger when nil.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{logger: logger}
}

// GetLogger returns the current logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}
