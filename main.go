package main

import (
	"os"

	"github.com/bnema/keyflush/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
