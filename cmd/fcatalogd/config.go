// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/xorpd/fcatalog-server/wire"
)

const (
	defaultConfigFilename = "fcatalogd.conf"
	defaultLogFilename    = "fcatalogd.log"
	defaultListen         = ":7590"
	defaultNumHashes      = 16
	defaultLogLevel       = "info"
)

var (
	defaultHomeDir       = appHomeDir()
	defaultConfigFile    = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultDBBasePath    = filepath.Join(defaultHomeDir, "catalogs")
	defaultLogDir        = filepath.Join(defaultHomeDir, "logs")
	defaultMaxFrameBytes = uint32(wire.DefaultMaxFrameLength)
)

// config defines the configuration options for fcatalogd, parsed from an
// optional INI config file followed by the command line, in that order
// (command-line flags win).
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`

	DBBasePath string `long:"dbbasepath" description:"Directory under which per-catalog stores are created"`
	NumHashes  uint32 `long:"numhashes" description:"Signature length (number of permutation hashes) required of every catalog"`
	Listen     string `short:"l" long:"listen" description:"Address to listen on for client connections"`

	MaxFrameBytes uint32 `long:"maxframebytes" description:"Maximum accepted frame payload size, in bytes"`

	LogDir   string `long:"logdir" description:"Directory to log output to"`
	LogLevel string `long:"loglevel" description:"Logging level: trace, debug, info, warn, error, critical"`
}

// appHomeDir returns fcatalogd's default application data directory.
func appHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".fcatalogd")
}

// defaultConfig returns a config populated with fcatalogd's defaults.
func defaultConfig() config {
	return config{
		ConfigFile:    defaultConfigFile,
		DBBasePath:    defaultDBBasePath,
		NumHashes:     defaultNumHashes,
		Listen:        defaultListen,
		MaxFrameBytes: defaultMaxFrameBytes,
		LogDir:        defaultLogDir,
		LogLevel:      defaultLogLevel,
	}
}

// loadConfig parses fcatalogd's configuration from an optional INI file
// plus the command line, following the conventional btcd/dcrd two-pass
// scheme: the command line is parsed once to discover -C/--configfile (and
// to support -h/--help without requiring a config file to exist), the INI
// file is then parsed into the defaults, and finally the command line is
// reapplied on top so explicit flags always win.
func loadConfig() (*config, error) {
	preCfg := defaultConfig()
	preParser := flags.NewParser(&preCfg, flags.Default)
	if _, err := preParser.Parse(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	cfg.ConfigFile = preCfg.ConfigFile

	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		iniParser := flags.NewParser(&cfg, flags.Default)
		if err := flags.NewIniParser(iniParser).ParseFile(cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("fcatalogd: parsing config file: %w", err)
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	if cfg.NumHashes == 0 {
		return nil, fmt.Errorf("fcatalogd: numhashes must be at least 1")
	}
	if cfg.DBBasePath == "" {
		return nil, fmt.Errorf("fcatalogd: dbbasepath must not be empty")
	}
	if err := os.MkdirAll(cfg.DBBasePath, 0700); err != nil {
		return nil, fmt.Errorf("fcatalogd: creating dbbasepath: %w", err)
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, fmt.Errorf("fcatalogd: creating logdir: %w", err)
	}

	return &cfg, nil
}
