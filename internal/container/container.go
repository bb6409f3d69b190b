// Package container wires the dependencies of the sepa-pain commands.
package container

import (
	"fmt"

	"fjacquet/sepa-pain/internal/batch"
	"fjacquet/sepa-pain/internal/config"
	"fjacquet/sepa-pain/internal/document"
	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/identifier"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.BatchStore
	countries identifier.CountryTable
	version   rules.Version
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return newContainer(cfg, logger)
}

// NewContainerWithLogger is NewContainer with a caller supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return newContainer(cfg, logger)
}

func newContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	version, err := rules.ParseVersion(cfg.SEPA.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid sepa.version: %w", err)
	}

	batchStore := store.NewBatchStore("", logger)
	countries, err := batchStore.LoadCountryTable(cfg.SEPA.CountryTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load country table: %w", err)
	}

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldVersion, version.String()),
		logging.F("validation", cfg.SEPA.CheckAndSanitize))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     batchStore,
		countries: countries,
		version:   version,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the batch file store.
func (c *Container) GetStore() *store.BatchStore {
	return c.store
}

// GetCountryTable returns the IBAN/BIC country table in use.
func (c *Container) GetCountryTable() identifier.CountryTable {
	return c.countries
}

// Version is the configured default schema version.
func (c *Container) Version() rules.Version {
	return c.version
}

// Defaults returns the document header defaults from the configuration.
func (c *Container) Defaults() batch.Defaults {
	return batch.Defaults{
		Version:    c.version,
		InitgPty:   c.config.SEPA.InitiatingParty,
		InitgPtyID: c.config.SEPA.InitiatingPartyID,
	}
}

// DocumentOptions returns the options every generated document gets.
func (c *Container) DocumentOptions() []document.Option {
	var flags fields.Flags
	if c.config.SEPA.GermanReplacement {
		flags |= fields.FlagGermanReplacement
	}
	return []document.Option{
		document.WithValidation(c.config.SEPA.CheckAndSanitize),
		document.WithSanitizeFlags(flags),
		document.WithCountryTable(c.countries),
		document.WithLogger(c.logger),
	}
}

// OutputOptions returns the configured output settings.
func (c *Container) OutputOptions() document.OutputOptions {
	return document.OutputOptions{
		FilenameTemplate:  c.config.Output.FilenameTemplate,
		ControlList:       c.config.Output.ControlList,
		ControlListFormat: c.config.ControlList.Format,
		Report:            c.config.ReportOptions(),
		Zip:               c.config.Output.Zip,
		Wrap:              c.config.Output.Wrap,
	}
}

// BatchOptions returns the processor options from the configuration.
func (c *Container) BatchOptions() batch.Options {
	return batch.Options{
		Output:    c.OutputOptions(),
		MultiFile: c.config.Output.MultiFile,
	}
}

// NewProcessor creates a batch processor. defaults and opts usually come
// from Defaults and BatchOptions adjusted by command flags.
func (c *Container) NewProcessor(defaults batch.Defaults, opts batch.Options) *batch.Processor {
	return batch.NewProcessor(c.logger, c.store, defaults, opts, c.DocumentOptions()...)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
