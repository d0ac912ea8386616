// Package main is the entry point for boardctl.
package main

import (
	"os"

	"github.com/danielolaszy/boardctl/cmd"
	"github.com/danielolaszy/boardctl/internal/logging"
)

var version = "dev"

func main() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logging.Debug("starting boardctl", "version", version, "log_level", logLevel)

	code := cmd.Execute()
	if code != 0 {
		logging.Debug("boardctl exited with failure", "exit_code", code)
	}
	os.Exit(code)
}
