// Package config loads smoothing parameters from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-spatial/spatial/nbhood"
	"github.com/cwbudde/algo-spatial/spatial/recursive"
	"github.com/cwbudde/algo-spatial/spatial/smooth"
	"gopkg.in/yaml.v3"
)

// File mirrors the YAML document. Absent keys stay nil and leave the
// corresponding setting untouched.
type File struct {
	Radius               *float64 `yaml:"radius"`
	ApplyRecursiveFilter *bool    `yaml:"apply_recursive_filter"`
	AlphaX               *float64 `yaml:"alpha_x"`
	AlphaY               *float64 `yaml:"alpha_y"`
	Iterations           *int     `yaml:"iterations"`
	ReMask               *bool    `yaml:"re_mask"`
	Shape                *string  `yaml:"shape"`
	Output               *string  `yaml:"output"`
	Weighted             *bool    `yaml:"weighted"`
	MaskStrategy         *string  `yaml:"mask_strategy"`
	EdgeWidth            *int     `yaml:"edge_width"`
	Workers              *int     `yaml:"workers"`
	Variable             *string  `yaml:"variable"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a single YAML document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, fmt.Errorf("%w: failed to parse config: %w", smooth.ErrConfiguration, err)
	}

	var extra interface{}
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("%w: multiple YAML documents are not supported", smooth.ErrConfiguration)
	}

	return f, nil
}

// Apply copies every key present in f into cfg. Names of shapes, outputs
// and mask strategies are parsed here; ranges are left to
// smooth.Config.Validate.
func (f *File) Apply(cfg *smooth.Config) error {
	setFloat(&cfg.Radius, f.Radius)
	setBool(&cfg.ApplyRecursiveFilter, f.ApplyRecursiveFilter)
	setFloat(&cfg.AlphaX, f.AlphaX)
	setFloat(&cfg.AlphaY, f.AlphaY)
	setInt(&cfg.Iterations, f.Iterations)
	setBool(&cfg.ReMask, f.ReMask)
	setBool(&cfg.Weighted, f.Weighted)
	setInt(&cfg.EdgeWidth, f.EdgeWidth)
	setInt(&cfg.Workers, f.Workers)

	if f.Shape != nil {
		s, err := nbhood.ParseShape(*f.Shape)
		if err != nil {
			return fmt.Errorf("%w: %w", smooth.ErrConfiguration, err)
		}
		cfg.Shape = s
	}
	if f.Output != nil {
		o, err := nbhood.ParseOutput(*f.Output)
		if err != nil {
			return fmt.Errorf("%w: %w", smooth.ErrConfiguration, err)
		}
		cfg.Output = o
	}
	if f.MaskStrategy != nil {
		s, err := recursive.ParseMaskStrategy(*f.MaskStrategy)
		if err != nil {
			return fmt.Errorf("%w: %w", smooth.ErrConfiguration, err)
		}
		cfg.MaskStrategy = s
	}

	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
