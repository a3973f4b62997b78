// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/render"
	"gopkg.in/yaml.v3"
)

// Config holds all settings which affect evaluation and rendering.
type Config struct {
	Diagnostics Diagnostics `yaml:"diagnostics"`
	Cache       Cache       `yaml:"cache"`
	Render      Render      `yaml:"render"`
}

// Diagnostics determines how diagnostics are collected and reported.
type Diagnostics struct {
	// Maximum number of errors collected (0 for no limit).
	ErrorLimit uint `yaml:"error_limit"`
	// Whether warnings are reported as errors.
	WarningsAsErrors bool `yaml:"warnings_as_errors"`
	// Whether output is coloured when writing to a terminal.
	Color bool `yaml:"color"`
	// Whether trace and info diagnostics are printed.
	Verbose bool `yaml:"verbose"`
}

// Cache determines which rendered geometry is retained between render passes.
type Cache struct {
	WeightRecency   float64 `yaml:"weight_recency"`
	WeightFrequency float64 `yaml:"weight_frequency"`
	WeightCost      float64 `yaml:"weight_cost"`
	MaxCost         float64 `yaml:"max_cost"`
}

// Render determines how geometry is rendered.
type Render struct {
	// Default linear resolution in millimetres.
	Resolution float64 `yaml:"resolution"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	w := render.DefaultWeights()
	//
	return &Config{
		Diagnostics: Diagnostics{ErrorLimit: 0, WarningsAsErrors: false, Color: true},
		Cache:       Cache{w.Recency, w.Frequency, w.Cost, w.MaxCost},
		Render:      Render{geo.DefaultResolution.Linear},
	}
}

// Load a configuration file, where any settings not given take their default
// values.  The environment is applied on top.  An empty filename gives the
// default configuration (plus environment).
func Load(filename string) (*Config, error) {
	config := Default()
	//
	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", filename, err)
		}
		//
		defer file.Close()
		//
		if err := config.Decode(file); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", filename, err)
		}
	}
	//
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	//
	return config, config.Validate()
}

// Decode settings from a YAML document, overwriting only those it gives.
// Unknown keys are rejected.
func (p *Config) Decode(reader io.Reader) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	//
	return nil
}

// ApplyEnv overrides settings from the environment.
func (p *Config) ApplyEnv() error {
	weights, err := p.Weights().FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	//
	p.Cache.MaxCost = weights.MaxCost
	//
	return nil
}

// Validate checks settings are within range.
func (p *Config) Validate() error {
	var issues []string
	//
	if p.Render.Resolution <= 0 {
		issues = append(issues, "render.resolution must be positive")
	}
	//
	if p.Cache.WeightRecency < 0 || p.Cache.WeightFrequency < 0 || p.Cache.WeightCost < 0 {
		issues = append(issues, "cache weights must not be negative")
	}
	//
	if len(issues) > 0 {
		return fmt.Errorf("config: %s", strings.Join(issues, ", "))
	}
	//
	return nil
}

// Weights returns the render cache weights.
func (p *Config) Weights() render.Weights {
	return render.Weights{
		Recency:   p.Cache.WeightRecency,
		Frequency: p.Cache.WeightFrequency,
		Cost:      p.Cache.WeightCost,
		MaxCost:   p.Cache.MaxCost,
	}
}

// Resolution returns the default render resolution.
func (p *Config) Resolution() geo.Resolution {
	return geo.Resolution{Linear: p.Render.Resolution}
}

// String renders this configuration as YAML.
func (p *Config) String() string {
	bytes, err := yaml.Marshal(p)
	if err != nil {
		return err.Error()
	}
	//
	return string(bytes)
}
