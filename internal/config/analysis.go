package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// Built-in fallbacks used when a field is absent from the loaded file.
const (
	DefaultFrameWindow  = 5
	DefaultFrameRate    = 24.0
	DefaultOutputFolder = "speed_distance_results"
	DefaultOverlayShift = 40
)

// AnalysisConfig holds the parameters of a speed/distance analysis run.
// Fields are pointers so a partial file leaves the rest at their defaults.
type AnalysisConfig struct {
	// Kinematics params
	FrameWindow *int     `json:"frame_window,omitempty"` // frames per measurement window
	FrameRate   *float64 `json:"frame_rate,omitempty"`   // source video frames per second

	// Export params
	OutputFolder *string `json:"output_folder,omitempty"`

	// Overlay params
	OverlayOffset *int `json:"overlay_offset_px,omitempty"` // label shift below the foot position
}

func ptrInt(v int) *int             { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyAnalysisConfig returns an AnalysisConfig with all fields set to nil.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// DefaultAnalysisConfig returns a config with every field populated from the
// built-in defaults.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		FrameWindow:   ptrInt(DefaultFrameWindow),
		FrameRate:     ptrFloat64(DefaultFrameRate),
		OutputFolder:  ptrString(DefaultOutputFolder),
		OverlayOffset: ptrInt(DefaultOverlayShift),
	}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
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

// Validate checks that the configuration values are valid.
func (c *AnalysisConfig) Validate() error {
	if c.FrameWindow != nil && *c.FrameWindow < 1 {
		return fmt.Errorf("frame_window must be at least 1, got %d", *c.FrameWindow)
	}
	if c.FrameRate != nil && *c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %f", *c.FrameRate)
	}
	if c.OutputFolder != nil && *c.OutputFolder == "" {
		return fmt.Errorf("output_folder must not be empty")
	}
	if c.OverlayOffset != nil && *c.OverlayOffset < 0 {
		return fmt.Errorf("overlay_offset_px must be non-negative, got %d", *c.OverlayOffset)
	}
	return nil
}

// GetFrameWindow returns the frame_window value or the default.
func (c *AnalysisConfig) GetFrameWindow() int {
	if c.FrameWindow == nil {
		return DefaultFrameWindow
	}
	return *c.FrameWindow
}

// GetFrameRate returns the frame_rate value or the default.
func (c *AnalysisConfig) GetFrameRate() float64 {
	if c.FrameRate == nil {
		return DefaultFrameRate
	}
	return *c.FrameRate
}

// GetOutputFolder returns the output_folder value or the default.
func (c *AnalysisConfig) GetOutputFolder() string {
	if c.OutputFolder == nil || *c.OutputFolder == "" {
		return DefaultOutputFolder
	}
	return *c.OutputFolder
}

// GetOverlayOffset returns the overlay_offset_px value or the default.
func (c *AnalysisConfig) GetOverlayOffset() int {
	if c.OverlayOffset == nil {
		return DefaultOverlayShift
	}
	return *c.OverlayOffset
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents up to the repository root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *AnalysisConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/<tool>/ and deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalysisConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}
