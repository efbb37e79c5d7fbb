package roboarm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/rdk/logging"
)

// DataDirEnv names the directory relative calibration paths are resolved against.
const DataDirEnv = "ROBOARM_DATA"

// Default home pose: in front of the shoulder, hand pointing straight up.
var (
	DefaultHomePosition    = r3.Vector{X: 11.5, Y: 0, Z: 11}
	DefaultHomeOrientation = r3.Vector{X: 0, Y: 0, Z: 1}
)

// Config describes an arm: its geometry, calibration source and home pose.
type Config struct {
	Geometry        *GeometryConfig `json:"geometry,omitempty"`
	CalibrationFile string          `json:"calibration_file,omitempty"`

	HomePosition    []float64 `json:"home_position,omitempty"`
	HomeOrientation []float64 `json:"home_orientation,omitempty"`
}

// GeometryConfig overrides individual link lengths; unset links keep their defaults.
type GeometryConfig struct {
	Shoulder     *float64 `json:"shoulder,omitempty"`
	UpperArm     *float64 `json:"upper_arm,omitempty"`
	Forearm      *float64 `json:"forearm,omitempty"`
	WristHeight  *float64 `json:"wrist_height,omitempty"`
	HandLength   *float64 `json:"hand_length,omitempty"`
	FingerLength *float64 `json:"finger_length,omitempty"`
}

// LoadConfig reads a JSON config file and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config JSON")
	}
	if err := cfg.Validate(path); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// Validate ensures all parts of the config are valid, filling in defaults
func (cfg *Config) Validate(path string) error {
	var err error

	if len(cfg.HomePosition) == 0 {
		cfg.HomePosition = []float64{DefaultHomePosition.X, DefaultHomePosition.Y, DefaultHomePosition.Z}
	}
	if len(cfg.HomeOrientation) == 0 {
		cfg.HomeOrientation = []float64{DefaultHomeOrientation.X, DefaultHomeOrientation.Y, DefaultHomeOrientation.Z}
	}

	_, herr := vectorFromSlice("home_position", cfg.HomePosition)
	err = multierr.Append(err, herr)
	gimbal, gerr := vectorFromSlice("home_orientation", cfg.HomeOrientation)
	err = multierr.Append(err, gerr)
	if gerr == nil && isDegenerate(gimbal) {
		err = multierr.Append(err, fmt.Errorf("home_orientation must not be zero"))
	}

	if geomErr := cfg.ArmGeometry().Validate(); geomErr != nil {
		err = multierr.Append(err, errors.Wrap(geomErr, "geometry"))
	}

	return err
}

// ArmGeometry returns the default geometry with the configured overrides applied.
func (cfg *Config) ArmGeometry() Geometry {
	g := DefaultGeometry()
	if cfg.Geometry == nil {
		return g
	}
	pick := func(override *float64, def float64) float64 {
		if override != nil {
			return *override
		}
		return def
	}
	o := cfg.Geometry
	return NewGeometry(
		pick(o.Shoulder, g.Shoulder),
		pick(o.UpperArm, g.UpperArm),
		pick(o.Forearm, g.Forearm),
		pick(o.WristHeight, g.WristHeight),
		pick(o.HandLength, g.HandLength),
		pick(o.FingerLength, g.FingerLength),
	)
}

// HomePose returns the configured home pose. Call Validate first.
func (cfg *Config) HomePose() Pose {
	pos, _ := vectorFromSlice("home_position", cfg.HomePosition)
	ori, _ := vectorFromSlice("home_orientation", cfg.HomeOrientation)
	return NewPose(pos, ori)
}

// LoadCalibration loads calibration from file or returns default calibration
// Returns (calibration, fromFile) where fromFile indicates if loaded from file
func (cfg *Config) LoadCalibration(logger logging.Logger) (Calibration, bool) {
	if cfg.CalibrationFile == "" {
		if logger != nil {
			logger.Debug("No calibration file specified, using default calibration")
		}
		return DefaultCalibration, false
	}

	path := cfg.CalibrationFile
	if !filepath.IsAbs(path) {
		if dataDir := os.Getenv(DataDirEnv); dataDir != "" {
			path = filepath.Join(dataDir, path)
		}
	}

	calibration, err := LoadCalibrationFromFile(path, logger)
	if err != nil {
		if logger != nil {
			logger.Warnf("Failed to load calibration from %s: %v, using default calibration", path, err)
		}
		return DefaultCalibration, false
	}

	if logger != nil {
		logger.Infof("Successfully loaded calibration from %s", path)
	}
	return calibration, true
}

// CalibrationFileFormat is the on-disk calibration layout, keyed by joint name.
// Joints missing from a file keep their default calibration.
type CalibrationFileFormat map[string]*CalibrationEntry

// LoadCalibrationFromFile loads and validates a calibration table from a JSON file
func LoadCalibrationFromFile(filePath string, logger logging.Logger) (Calibration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Calibration{}, errors.Wrap(err, "failed to read calibration file")
	}

	var fileFormat CalibrationFileFormat
	if err := json.Unmarshal(data, &fileFormat); err != nil {
		return Calibration{}, errors.Wrap(err, "failed to parse calibration JSON")
	}

	calibration := DefaultCalibration
	for name, entry := range fileFormat {
		joint, err := ParseJoint(name)
		if err != nil {
			return Calibration{}, err
		}
		if entry != nil {
			calibration[joint] = *entry
		}
	}

	if err := calibration.Validate(); err != nil {
		return Calibration{}, errors.Wrap(err, "calibration validation failed")
	}

	if logger != nil {
		logger.Debug("Full calibration validation passed")
	}

	return calibration, nil
}

// SaveCalibrationToFile saves a calibration table to a JSON file
func SaveCalibrationToFile(filePath string, calibration Calibration) error {
	fileFormat := make(CalibrationFileFormat, NumJoints)
	for _, j := range AllJoints() {
		entry := calibration[j]
		fileFormat[j.String()] = &entry
	}

	data, err := json.MarshalIndent(fileFormat, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal calibration")
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write calibration file")
	}

	return nil
}

func vectorFromSlice(name string, v []float64) (r3.Vector, error) {
	if len(v) != 3 {
		return r3.Vector{}, fmt.Errorf("%s must have 3 components, got %d", name, len(v))
	}
	vec := r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	if !isFinite(vec) {
		return r3.Vector{}, fmt.Errorf("%s must be finite, got %v", name, v)
	}
	return vec, nil
}
