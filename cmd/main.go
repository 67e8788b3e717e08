package main

import (
	"os"

	sequencer "github.com/0xPolygon/zkevm-sequencer-core"
	"github.com/0xPolygon/zkevm-sequencer-core/config"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/urfave/cli/v2"
)

const appName = "sequencer"

var (
	configFileFlag = cli.StringFlag{
		Name:     config.FlagCfg,
		Aliases:  []string{"c"},
		Usage:    "Configuration `FILE`",
		Required: false,
	}
	networkFileFlag = cli.StringFlag{
		Name:     config.FlagNetworkFile,
		Aliases:  []string{"net-file"},
		Usage:    "Network config `FILE` used when joining a network for the first time",
		Required: false,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Version = sequencer.Version
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "run",
			Aliases: []string{},
			Usage:   "Run the sequencer node",
			Action:  start,
			Flags:   []cli.Flag{&configFileFlag, &networkFileFlag},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}
