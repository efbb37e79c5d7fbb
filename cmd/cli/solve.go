package main

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"roboarm"
)

const (
	flagX    = "x"
	flagY    = "y"
	flagZ    = "z"
	flagOX   = "ox"
	flagOY   = "oy"
	flagOZ   = "oz"
	flagGrip = "grip"
)

// SolveAction solves one pose on a fresh arm and prints the published state.
func SolveAction(c *cli.Context) error {
	logger := newLogger(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	a, err := roboarm.NewArm(cfg, logger)
	if err != nil {
		return err
	}

	position := r3.Vector{X: c.Float64(flagX), Y: c.Float64(flagY), Z: c.Float64(flagZ)}
	orientation := orientationFlags(c)

	a.SetGrip(c.Float64(flagGrip))

	reachable, err := a.UpdatePose(position, orientation)
	if err != nil && !errors.Is(err, roboarm.ErrUnreachablePose) {
		return errors.Wrapf(err, "pose %v / %v rejected", position, orientation)
	}
	state := a.State()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "Angle (deg)", "Servo (deg)", "Travel"})
	cal := a.Calibration()
	for _, j := range roboarm.AllJoints() {
		t.AppendRow(table.Row{
			int(j),
			j,
			fmt.Sprintf("%.2f", roboarm.Degrees(state.Joints[j])),
			fmt.Sprintf("%.2f", state.Servos[j]),
			fmt.Sprintf("[%g, %g]", cal[j].Min, cal[j].Max),
		})
	}
	fmt.Fprintln(c.App.Writer, t.Render())
	fmt.Fprintf(c.App.Writer, "servos: %v\nreachable: %v\n", state.Servos, reachable)
	return nil
}

// orientationFlags reads the hand direction. With none of --ox, --oy, --oz given the
// hand points straight up; otherwise unset components are zero.
func orientationFlags(c *cli.Context) r3.Vector {
	if !c.IsSet(flagOX) && !c.IsSet(flagOY) && !c.IsSet(flagOZ) {
		return roboarm.DefaultHomeOrientation
	}
	return r3.Vector{X: c.Float64(flagOX), Y: c.Float64(flagOY), Z: c.Float64(flagOZ)}
}

func loadConfig(c *cli.Context) (*roboarm.Config, error) {
	path := c.String(flagConfig)
	if path == "" {
		return &roboarm.Config{}, nil
	}
	cfg, err := roboarm.LoadConfig(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading arm config")
	}
	return cfg, nil
}
