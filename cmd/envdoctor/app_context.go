package main

import (
	"os"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/envdoctor/internal/logger"
)

const defaultConfigPath = "envdoctor.yaml"

func newLogger(verbose bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true, Writer: os.Stderr})
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
