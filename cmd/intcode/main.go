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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/urfave/cli/v2"
)

var log = commonlog.GetLogger("intcode")

var debug bool

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "load configuration from `FILE` (default: " + defaultConfig + " if present)",
	}
	debugFlag = &cli.BoolFlag{
		Name:        "debug",
		Usage:       "print error stack traces",
		Destination: &debug,
	}
	verbosityFlag = &cli.IntFlag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0: warnings and errors only)",
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "write logs to `FILE` instead of stderr",
	}
)

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	app := &cli.App{
		Name:  "intcode",
		Usage: "run Intcode programs",
		Flags: []cli.Flag{
			configFlag,
			debugFlag,
			verbosityFlag,
			logFileFlag,
		},
		Commands: []*cli.Command{
			runCommand,
			searchCommand,
			amplifyCommand,
			arcadeCommand,
			asmCommand,
			disasmCommand,
		},
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Before:    setup,
	}
	return app
}

// setup loads the configuration and configures logging. Command actions
// retrieve the configuration with getConfig.
func setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String(configFlag.Name), c.IsSet(configFlag.Name))
	if err != nil {
		return err
	}
	if c.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = c.Int(verbosityFlag.Name)
	}
	if c.IsSet(logFileFlag.Name) {
		cfg.Log.File = c.String(logFileFlag.Name)
	}
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	c.App.Metadata = map[string]interface{}{configKey: cfg}
	return nil
}

func atExit(err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
	}
	os.Exit(1)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(os.Stdin, os.Stdout).RunContext(ctx, os.Args)
	cancel()
	if errors.Cause(err) == context.Canceled {
		err = nil
	}
	atExit(err)
}
