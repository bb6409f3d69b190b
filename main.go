package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fjacquet/sepa-pain/cmd/check"
	"fjacquet/sepa-pain/cmd/generate"
	"fjacquet/sepa-pain/cmd/inspect"
	"fjacquet/sepa-pain/cmd/root"
)

func init() {
	// Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// Set the level before any logger is created
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(generate.Cmd)
	root.Cmd.AddCommand(check.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global logrus level from SEPA_LOG_LEVEL
// or LOG_LEVEL and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("SEPA_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = os.Getenv("LOG_LEVEL")
	}
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	root.Log.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
