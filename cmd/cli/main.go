// Command cli solves arm poses and manages calibration files from the shell.
package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.viam.com/rdk/logging"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"
)

var app = &cli.App{
	Name:            "roboarm",
	Usage:           "solve 6-DoF arm poses into servo angles",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "load arm configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "solve",
			Usage:     "solve a pose and print joint and servo angles",
			UsageText: "roboarm solve --x 11.5 --z 11 [--ox 1 --oz 1] [--grip 0.5]",
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: flagX, Usage: "target x", Required: true},
				&cli.Float64Flag{Name: flagY, Usage: "target y"},
				&cli.Float64Flag{Name: flagZ, Usage: "target z", Required: true},
				&cli.Float64Flag{Name: flagOX, Usage: "hand direction x"},
				&cli.Float64Flag{Name: flagOY, Usage: "hand direction y"},
				&cli.Float64Flag{Name: flagOZ, Usage: "hand direction z (direction defaults to +z)"},
				&cli.Float64Flag{Name: flagGrip, Usage: "grip opening in [0,1]"},
			},
			Action: SolveAction,
		},
		{
			Name:            "calibration",
			Usage:           "work with servo calibration files",
			HideHelpCommand: true,
			Subcommands: []*cli.Command{
				{
					Name:  "init",
					Usage: "write the default calibration table",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: flagOut, Usage: "write to `FILE`", Required: true},
					},
					Action: CalibrationInitAction,
				},
				{
					Name:  "show",
					Usage: "print the effective calibration table",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: flagFile, Usage: "read calibration from `FILE` instead of the config"},
					},
					Action: CalibrationShowAction,
				},
			},
		},
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("roboarm-cli").Error(err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(flagDebug) {
		return logging.NewDebugLogger("roboarm-cli")
	}
	return logging.NewLogger("roboarm-cli")
}
