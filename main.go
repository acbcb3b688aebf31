package main

import (
	"timing-report/cmd"
	"timing-report/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.GetLogger().WithError(err).Fatal("Failed to execute command")
	}
}
