package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"roboarm"
)

const (
	flagOut  = "out"
	flagFile = "file"
)

// CalibrationInitAction writes the default calibration table so it can be edited.
func CalibrationInitAction(c *cli.Context) error {
	path := c.String(flagOut)
	if err := roboarm.SaveCalibrationToFile(path, roboarm.DefaultCalibration); err != nil {
		return err
	}
	newLogger(c).Infof("Wrote default calibration to %s", path)
	return nil
}

// CalibrationShowAction prints the calibration table the arm would use.
func CalibrationShowAction(c *cli.Context) error {
	logger := newLogger(c)

	var (
		cal    roboarm.Calibration
		source string
	)
	if path := c.String(flagFile); path != "" {
		loaded, err := roboarm.LoadCalibrationFromFile(path, logger)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		cal, source = loaded, path
	} else {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		var fromFile bool
		cal, fromFile = cfg.LoadCalibration(logger)
		source = "default"
		if fromFile {
			source = cfg.CalibrationFile
		}
	}

	t := table.NewWriter()
	t.SetTitle("calibration: " + source)
	t.AppendHeader(table.Row{"#", "Joint", "Direction", "Offset", "Min", "Max"})
	for _, j := range roboarm.AllJoints() {
		e := cal[j]
		t.AppendRow(table.Row{int(j), j, e.Direction, e.Offset, e.Min, e.Max})
	}
	fmt.Fprintln(c.App.Writer, t.Render())
	return nil
}
