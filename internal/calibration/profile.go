package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/picalc/internal/config"
)

// CurrentProfileVersion is bumped whenever the profile layout or the
// calibration workload changes, so old profiles are not trusted.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the file created in the home directory.
const DefaultProfileFileName = ".picalc_calibration.json"

// CalibrationProfile is the persisted outcome of a calibration run together
// with the hardware it was measured on.
type CalibrationProfile struct {
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	OptimalThreads int    `json:"optimal_threads"`
	Engine         string `json:"engine"`

	CalibrationIterations uint64 `json:"calibration_iterations"`
	CalibrationPrecision  uint   `json:"calibration_precision"`
	CalibrationTime       string `json:"calibration_time"`
}

// NewProfile returns a profile stamped with the current hardware and time.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
	}
}

// IsValid reports whether the profile was produced on hardware matching the
// current process and by a compatible version of the calibration.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	current := NewProfile()
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == current.NumCPU &&
		p.GOARCH == current.GOARCH &&
		p.WordSize == current.WordSize &&
		p.OptimalThreads > 0
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String summarizes the profile on one line.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d: %d threads (%s) on %d CPUs %s/%s, %d terms at %d bits, measured %s in %s",
		p.ProfileVersion, p.OptimalThreads, p.Engine, p.NumCPU, p.GOOS, p.GOARCH,
		p.CalibrationIterations, p.CalibrationPrecision,
		p.CalibratedAt.Format(time.RFC3339), p.CalibrationTime)
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When it cannot be read a
// fresh, unmeasured profile is returned and loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.picalc_calibration.json, or the bare
// file name in the working directory when no home directory is known.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// resolvePath maps an empty --calibration-profile to the default location.
func resolvePath(path string) string {
	if path == "" {
		return GetDefaultProfilePath()
	}
	return path
}

// LoadCachedCalibration applies a valid cached profile to cfg. The thread
// count from the profile is used only when the user did not choose one.
//
// Returns the updated configuration and whether a profile was applied.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.ThreadsSet {
		return cfg, false
	}
	p, err := loadProfile(resolvePath(path))
	if err != nil || !p.IsValid() {
		return cfg, false
	}
	cfg.Threads = p.OptimalThreads
	return cfg, true
}
