// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/sepa-pain/internal/common"
	"fjacquet/sepa-pain/internal/config"
	"fjacquet/sepa-pain/internal/container"
	"fjacquet/sepa-pain/internal/fileutils"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/xmlutils"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	NoValidate bool
	ConfigFile string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before every command
	AppConfig *config.Config

	// AppContainer is built from AppConfig before every command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sepa-pain",
		Short: "A CLI tool to generate SEPA pain.001 and pain.008 payment files.",
		Long: `sepa-pain generates SEPA credit transfer (pain.001) and direct debit
(pain.008) XML documents from YAML batch files or CSV payment lists.
Input is validated and sanitized field by field before any XML is written.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sepa-pain!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.Warnf("Failed to close container: %v", err)
			}
		},
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.NoValidate, "no-validate", false, "Skip field validation and sanitizing")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default is ./config.yaml)")
}

func initialize() error {
	config.LoadEnv()

	var (
		cfg *config.Config
		err error
	)
	if SharedFlags.ConfigFile != "" {
		cfg, err = config.InitializeConfigFile(SharedFlags.ConfigFile)
	} else {
		cfg, err = config.InitializeConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.NoValidate {
		cfg.SEPA.CheckAndSanitize = false
	}
	if SharedFlags.Output != "" {
		cfg.Output.Directory = SharedFlags.Output
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	logger := logging.NewLogrusAdapterFromLogger(Log)
	common.SetLogger(logger)
	fileutils.SetLogger(logger)
	xmlutils.SetLogger(logger)

	AppContainer, err = container.NewContainerWithLogger(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppConfig = cfg
	return nil
}

// GetContainer returns the application container, nil before a command ran
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, nil before a command ran
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogrusAdapter returns the container logger, or an adapter over Log
// when no container exists yet.
func GetLogrusAdapter() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}
