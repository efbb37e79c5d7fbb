package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	require.NoError(t, app.Run(append([]string{"roboarm"}, args...)))
	return out.String()
}

func servoLine(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "servos: ") {
			return line
		}
	}
	t.Fatalf("no servo line in output:\n%s", out)
	return ""
}

func TestSolveCommand(t *testing.T) {
	out := runApp(t, "solve", "--x", "11.5", "--z", "11")
	require.Contains(t, out, "shoulder_rotation")
	require.Contains(t, out, "servos: 0, 10.00 | 1, 108.00 | 2, 71.07 | 3, 147.16 | 4, 118.81 | 5, 90.00")
	require.Contains(t, out, "reachable: true")

	out = runApp(t, "solve", "--x", "25", "--z", "25")
	require.Contains(t, out, "reachable: false")
}

func TestCalibrationCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")

	runApp(t, "calibration", "init", "--out", path)

	out := runApp(t, "calibration", "show", "--file", path)
	require.Contains(t, out, "wrist_flex")
	require.Contains(t, out, "-25.42")

	out = runApp(t, "calibration", "show")
	require.Contains(t, out, "shoulder_elevation")
}

func TestSolveOrientationFlags(t *testing.T) {
	up := servoLine(t, runApp(t, "solve", "--x", "12", "--z", "10"))
	require.Equal(t, up, servoLine(t, runApp(t, "solve", "--x", "12", "--z", "10", "--oz", "1")))

	// a single component means exactly that direction, not that plus +z
	forward := servoLine(t, runApp(t, "solve", "--x", "12", "--z", "10", "--ox", "1"))
	require.Equal(t, forward, servoLine(t, runApp(t, "solve", "--x", "12", "--z", "10", "--ox", "1", "--oz", "0")))
	require.NotEqual(t, forward, servoLine(t, runApp(t, "solve", "--x", "12", "--z", "10", "--ox", "1", "--oz", "1")))
	require.NotEqual(t, up, forward)

	var out bytes.Buffer
	app.Writer = &out
	err := app.Run([]string{"roboarm", "solve", "--x", "12", "--z", "10", "--ox", "0"})
	require.ErrorContains(t, err, "rejected")
}
