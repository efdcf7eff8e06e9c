// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	defaultConfig = "intcode.toml"
	configKey     = "config"
)

// config is the contents of an intcode.toml file. Command line flags override
// configuration values.
type config struct {
	Run struct {
		Program  string  `toml:"program"`
		Inputs   []int64 `toml:"inputs"`
		MaxSteps int64   `toml:"max-steps"`
	} `toml:"run"`
	Amplify struct {
		Phases   []int64 `toml:"phases"`
		Feedback bool    `toml:"feedback"`
		Parallel int     `toml:"parallel"`
	} `toml:"amplify"`
	Arcade struct {
		Quarters  int64         `toml:"quarters"`
		Visualize bool          `toml:"visualize"`
		Delay     time.Duration `toml:"delay"`
	} `toml:"arcade"`
	Log struct {
		Verbosity int    `toml:"verbosity"`
		File      string `toml:"file"`
	} `toml:"log"`
}

// loadConfig loads the configuration file fileName. If fileName is empty,
// defaultConfig is tried. A missing file is an error only if required is set.
func loadConfig(fileName string, required bool) (*config, error) {
	cfg := new(config)
	if fileName == "" {
		fileName = defaultConfig
	}
	if _, err := os.Stat(fileName); err != nil {
		if !required && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "load config")
	}
	md, err := toml.DecodeFile(fileName, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", fileName)
	}
	for _, k := range md.Undecoded() {
		log.Warningf("%s: unknown configuration key %q", fileName, k.String())
	}
	return cfg, nil
}

func getConfig(c *cli.Context) *config {
	if cfg, ok := c.App.Metadata[configKey].(*config); ok {
		return cfg
	}
	return new(config)
}
