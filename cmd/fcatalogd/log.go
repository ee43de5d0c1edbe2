// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/xorpd/fcatalog-server/funcsdb"
	"github.com/xorpd/fcatalog-server/server"
)

// logRotator writes to a rotating log file. It is created in
// initLogRotator and kept alive for the process lifetime.
var logRotator *rotator.Rotator

// logWriter implements io.Writer so that logged output is written to both
// standard output and the current log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

// subsystemLoggers maps each collaborator package's subsystem tag to the
// UseLogger hook it exposes, so setLogLevels can address them uniformly.
var subsystemLoggers = map[string]func(btclog.Logger){
	"SRVR": server.UseLogger,
	"FDB":  funcsdb.UseLogger,
}

var backendLog *btclog.Backend

// initLogRotator starts the log rotator that writes to logFile, rolling it
// over once it grows past 10 MiB and keeping at most 3 rolled files.
func initLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			os.Stderr.WriteString("fcatalogd: failed to create log directory: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		os.Stderr.WriteString("fcatalogd: failed to create log rotator: " + err.Error() + "\n")
		os.Exit(1)
	}
	logRotator = r

	backendLog = btclog.NewBackend(logWriter{})
	for tag, use := range subsystemLoggers {
		use(backendLog.Logger(tag))
	}
}

// setLogLevels sets every subsystem logger to level, a string as accepted
// by btclog.LevelFromString ("trace", "debug", "info", "warn", "error",
// "critical", "off").
func setLogLevels(levelStr string) error {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		return fmt.Errorf("fcatalogd: unknown log level %q", levelStr)
	}
	for tag, use := range subsystemLoggers {
		logger := backendLog.Logger(tag)
		logger.SetLevel(level)
		use(logger)
	}
	return nil
}
