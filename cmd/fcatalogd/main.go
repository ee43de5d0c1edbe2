// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command fcatalogd is the fcatalog-server daemon: it listens for client
// connections, serves the catalog1 protocol, and persists reversed-function
// catalogs under its configured data directory.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xorpd/fcatalog-server/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fcatalogd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
	if err := setLogLevels(cfg.LogLevel); err != nil {
		return err
	}

	srv := server.New(server.Config{
		DBBasePath:     cfg.DBBasePath,
		NumHashes:      cfg.NumHashes,
		MaxFrameLength: cfg.MaxFrameBytes,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Listen)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		return srv.Shutdown()
	}
}
