package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/crosspath/internal/intersect"
	"github.com/banshee-data/crosspath/internal/trajectory"
)

// DefaultConfigPath is the path to the canonical analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// AnalysisConfig holds the caller-supplied parameters of a crossing count.
// Every field is optional; the Get* accessors supply defaults, so partial
// files are safe and flags can override individual values.
type AnalysisConfig struct {
	// Test window
	WindowLow  *float64 `json:"window_low,omitempty"`
	WindowHigh *float64 `json:"window_high,omitempty"`

	// Solver selection
	Solver *string `json:"solver,omitempty"` // "algebraic" or "parametric"
	Plane  *string `json:"plane,omitempty"`  // "xy", "xz" or "yz"

	// Parametric lookahead. Zero or absent derives it from the window.
	Horizon *float64 `json:"horizon,omitempty"`

	// Algebraic near-zero determinant threshold
	Epsilon *float64 `json:"epsilon,omitempty"`

	// Cross-validation tolerance (absolute or relative)
	Tolerance *float64 `json:"tolerance,omitempty"`

	Workers        *int  `json:"workers,omitempty"`
	SkipDegenerate *bool `json:"skip_degenerate,omitempty"`
}

// EmptyAnalysisConfig returns an AnalysisConfig with all fields set to nil.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *AnalysisConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/crosspath/ and deeper
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalysisConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *AnalysisConfig) Validate() error {
	low, high := c.GetWindowLow(), c.GetWindowHigh()
	if math.IsNaN(low) || math.IsNaN(high) || low > high {
		return fmt.Errorf("window_low (%g) must not exceed window_high (%g)", low, high)
	}

	if c.Solver != nil {
		if _, err := intersect.ParseKind(*c.Solver); err != nil {
			return err
		}
	}

	if c.Plane != nil {
		if _, err := trajectory.ParsePlane(*c.Plane); err != nil {
			return err
		}
	}

	if c.Horizon != nil && *c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %g", *c.Horizon)
	}

	if c.Epsilon != nil && *c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", *c.Epsilon)
	}

	if c.Tolerance != nil && *c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", *c.Tolerance)
	}

	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}

	return nil
}

// GetWindowLow returns the window_low value or the default.
func (c *AnalysisConfig) GetWindowLow() float64 {
	if c.WindowLow == nil {
		return 200_000_000_000_000
	}
	return *c.WindowLow
}

// GetWindowHigh returns the window_high value or the default.
func (c *AnalysisConfig) GetWindowHigh() float64 {
	if c.WindowHigh == nil {
		return 400_000_000_000_000
	}
	return *c.WindowHigh
}

// GetSolver returns the solver kind or the default (algebraic).
// An unparsable value falls back to the default; Validate reports it.
func (c *AnalysisConfig) GetSolver() intersect.Kind {
	if c.Solver == nil {
		return intersect.KindAlgebraic
	}
	k, err := intersect.ParseKind(*c.Solver)
	if err != nil {
		return intersect.KindAlgebraic
	}
	return k
}

// GetPlane returns the projection plane or the default (xy).
func (c *AnalysisConfig) GetPlane() trajectory.Plane {
	if c.Plane == nil {
		return trajectory.PlaneXY
	}
	p, err := trajectory.ParsePlane(*c.Plane)
	if err != nil {
		return trajectory.PlaneXY
	}
	return p
}

// GetHorizon returns the fixed parametric horizon, or 0 to derive it from
// the window.
func (c *AnalysisConfig) GetHorizon() float64 {
	if c.Horizon == nil {
		return 0
	}
	return *c.Horizon
}

// GetEpsilon returns the epsilon value or the default.
func (c *AnalysisConfig) GetEpsilon() float64 {
	if c.Epsilon == nil {
		return intersect.DefaultEpsilon
	}
	return *c.Epsilon
}

// GetTolerance returns the tolerance value or the default.
func (c *AnalysisConfig) GetTolerance() float64 {
	if c.Tolerance == nil {
		return 1e-6
	}
	return *c.Tolerance
}

// GetWorkers returns the worker count, defaulting to GOMAXPROCS.
func (c *AnalysisConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return *c.Workers
}

// GetSkipDegenerate returns the skip_degenerate value or the default.
func (c *AnalysisConfig) GetSkipDegenerate() bool {
	if c.SkipDegenerate == nil {
		return false
	}
	return *c.SkipDegenerate
}

// SolverOptions translates the configuration into intersect options.
func (c *AnalysisConfig) SolverOptions() []intersect.Option {
	opts := []intersect.Option{
		intersect.WithPlane(c.GetPlane()),
		intersect.WithEpsilon(c.GetEpsilon()),
		intersect.WithWindow(c.GetWindowLow(), c.GetWindowHigh()),
	}
	if h := c.GetHorizon(); h > 0 {
		opts = append(opts, intersect.WithHorizon(h))
	}
	return opts
}

// NewSolver builds the configured solver.
func (c *AnalysisConfig) NewSolver() (intersect.Solver, error) {
	return intersect.New(c.GetSolver(), c.SolverOptions()...)
}

// Helper functions to create pointers
func PtrFloat64(v float64) *float64 { return &v }
func PtrBool(v bool) *bool          { return &v }
func PtrString(v string) *string    { return &v }
func PtrInt(v int) *int             { return &v }
