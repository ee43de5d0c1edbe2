// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server implements the fcatalog-server TCP listener and the
// per-connection session state machine described in spec.md §5: accept a
// connection, require ChooseDB as the first message, then dispatch
// AddFunction and RequestSimilars against the chosen catalog until the
// client disconnects or violates the protocol.
//
// The listener/goroutine-per-connection/context-cancellation shape is
// modeled on the Stratum pool server's StratumServer/StratumClient split;
// the session state machine itself is a direct translation of
// fcatalog_logic.py's client_handler coroutine.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/xorpd/fcatalog-server/funcsdb"
	"github.com/xorpd/fcatalog-server/wire"
)

// Config parameterizes a Server.
type Config struct {
	// DBBasePath is the directory under which each chosen catalog's
	// goleveldb store lives, one subdirectory per catalog name.
	DBBasePath string
	// NumHashes is the signature length new and existing catalogs are
	// required to agree on.
	NumHashes uint32
	// MaxFrameLength bounds a single frame's payload. Zero selects
	// wire.DefaultMaxFrameLength.
	MaxFrameLength uint32
}

// Server accepts connections on a single listener and runs one Session
// goroutine per accepted connection.
type Server struct {
	cfg Config

	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a Server from cfg. The server does not listen until Run is
// called.
func New(cfg Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{cfg: cfg, ctx: ctx, cancel: cancel}
}

// Run listens on addr and serves connections until Shutdown is called or
// the listener fails. Run blocks; callers typically invoke it in its own
// goroutine.
func (s *Server) Run(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	s.listener = listener

	log.Infof("Listening on %s", addr)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return nil
			default:
				return fmt.Errorf("server: accept: %w", err)
			}
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// handleConn runs one Session to completion over conn.
func (s *Server) handleConn(conn net.Conn) {
	remote := conn.RemoteAddr()
	log.Debugf("New connection from %s", remote)

	// Close the connection on Shutdown so a Session blocked in Recv returns.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-s.ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	fc := wire.NewFrameConn(conn, s.cfg.MaxFrameLength)
	sess := newSession(fc, s.cfg.DBBasePath, s.cfg.NumHashes)
	sess.run()

	log.Debugf("Connection from %s closed", remote)
}

// Shutdown stops accepting new connections, closes the listener, and
// blocks until every in-flight Session has returned.
func (s *Server) Shutdown() error {
	s.cancel()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.wg.Wait()
	return err
}
