// Package container wires the application's dependencies. The category store it
// creates is the single store instance of the process; every component that reads or
// learns rules receives it from here.
package container

import (
	"fmt"

	"fjacquet/budget-csv/internal/categorizer"
	"fjacquet/budget-csv/internal/common"
	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/csvparser"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/parser"
	"fjacquet/budget-csv/internal/store"
)

// Container holds all application dependencies. Fields are private and only
// reachable through getters, so dependencies cannot be swapped after creation.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	learner     *categorizer.Learner
	parser      parser.FileParser
	csv         *common.CSVHandler
}

// NewContainer creates all dependencies from cfg, logging through a logrus adapter
// configured by cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	categoryStore := store.Load(store.ResolvePath(cfg.Categories.File), logger)

	delimiter := common.DefaultDelimiter
	if cfg.CSV.Delimiter != "" {
		delimiter = cfg.DelimiterRune()
	}

	c := &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		categorizer: categorizer.NewCategorizer(categoryStore, logger),
		learner:     categorizer.NewLearner(categoryStore, logger),
		parser:      csvparser.NewParser(logger, cfg.CSV.InputDateLayout),
		csv:         common.NewCSVHandler(delimiter, cfg.CSV.ExportDateLayout, logger),
	}

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldFile, categoryStore.Path()),
		logging.F("categories", categoryStore.Len()))
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store shared by the categorizer and the learner.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetLearner returns the learner.
func (c *Container) GetLearner() *categorizer.Learner {
	return c.learner
}

// GetParser returns the bank export parser.
func (c *Container) GetParser() parser.FileParser {
	return c.parser
}

// GetCSVHandler returns the categorized CSV reader and writer.
func (c *Container) GetCSVHandler() *common.CSVHandler {
	return c.csv
}

// Close releases container resources. The store is write-through, so nothing is
// pending at this point.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
