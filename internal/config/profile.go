package config

import (
	"errors"
	"flag"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// FileProfile is a YAML run profile. Absent keys leave the corresponding
// setting untouched.
//
//	threads: 8
//	iterations: 7200
//	precision_bytes: 12500
//	engine: dynamic
//	check: true
type FileProfile struct {
	Threads        *int    `yaml:"threads"`
	Iterations     *int64  `yaml:"iterations"`
	Precision      *uint   `yaml:"precision"`
	PrecisionBytes *uint   `yaml:"precision_bytes"`
	Engine         *string `yaml:"engine"`
	Backend        *string `yaml:"backend"`
	Check          *bool   `yaml:"check"`
	Reference      *string `yaml:"reference"`
	Output         *string `yaml:"output"`
	MetricsAddr    *string `yaml:"metrics_addr"`
	GC             *string `yaml:"gc"`
	Lenient        *bool   `yaml:"lenient"`
}

// LoadFileProfile reads a YAML profile. Unknown keys are rejected.
func LoadFileProfile(path string) (FileProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileProfile{}, apperrors.ResourceError{Kind: apperrors.ResourceProfile, Path: path, Cause: err}
	}
	defer f.Close()

	var p FileProfile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return FileProfile{}, apperrors.NewConfigError("invalid profile %s: %v", path, err)
	}
	return p, nil
}

// apply copies every present key whose flag was not given on the command
// line.
func (p FileProfile) apply(c *AppConfig, fs *flag.FlagSet) {
	if p.Threads != nil && !isFlagSetAny(fs, "threads", "t") {
		c.Threads = *p.Threads
		c.ThreadsSet = true
	}
	if p.Iterations != nil && !isFlagSetAny(fs, "iterations", "n") {
		c.Iterations = *p.Iterations
	}
	if p.Precision != nil && !isFlagSetAny(fs, "precision", "p") {
		c.Precision = *p.Precision
	}
	if p.PrecisionBytes != nil && !isFlagSet(fs, "precision-bytes") {
		c.PrecisionBytes = *p.PrecisionBytes
	}
	if p.Engine != nil && !isFlagSet(fs, "engine") {
		c.Engine = *p.Engine
	}
	if p.Backend != nil && !isFlagSet(fs, "backend") {
		c.Backend = *p.Backend
	}
	if p.Check != nil && !isFlagSetAny(fs, "check", "c") {
		c.Check = *p.Check
	}
	if p.Reference != nil && !isFlagSet(fs, "reference") {
		c.Reference = *p.Reference
	}
	if p.Output != nil && !isFlagSetAny(fs, "output", "o") {
		c.OutputFile = *p.Output
	}
	if p.MetricsAddr != nil && !isFlagSet(fs, "metrics-addr") {
		c.MetricsAddr = *p.MetricsAddr
	}
	if p.GC != nil && !isFlagSet(fs, "gc") {
		c.GCMode = *p.GC
	}
	if p.Lenient != nil && !isFlagSet(fs, "lenient") {
		c.Lenient = *p.Lenient
	}
}
