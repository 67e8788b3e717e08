package main

import (
	"os"

	sequencer "github.com/0xPolygon/zkevm-sequencer-core"
	"github.com/urfave/cli/v2"
)

func versionCmd(*cli.Context) error {
	sequencer.PrintVersion(os.Stdout)
	return nil
}
