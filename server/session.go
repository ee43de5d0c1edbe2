// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"github.com/xorpd/fcatalog-server/funcsdb"
	"github.com/xorpd/fcatalog-server/wire"
)

// sessionState is a session's position in the ChooseDB -> Ready -> Closed
// state machine of spec.md §5.
type sessionState int

const (
	stateAwaitChoose sessionState = iota
	stateReady
	stateClosed
)

// session drives one connection through the catalog1 protocol: it is the
// direct translation of fcatalog_logic.py's client_handler coroutine, with
// the asyncio "yield from recv()" loop replaced by ordinary blocking calls
// on a dedicated per-connection goroutine.
type session struct {
	conn       *wire.FrameConn
	dbBasePath string
	numHashes  uint32

	state sessionState
	index *funcsdb.Index
}

func newSession(conn *wire.FrameConn, dbBasePath string, numHashes uint32) *session {
	return &session{
		conn:       conn,
		dbBasePath: dbBasePath,
		numHashes:  numHashes,
		state:      stateAwaitChoose,
	}
}

// run executes the session to completion. It never returns an error: every
// failure mode of the catalog1 protocol (bad first message, invalid
// catalog name, malformed frame, I/O error) is defined to terminate the
// connection silently, matching the Python reference.
func (s *session) run() {
	defer s.close()

	msg, err := s.recvMessage()
	if err != nil {
		return
	}

	choose, ok := msg.(*wire.ChooseDB)
	if !ok {
		log.Debugf("first message was %s, not ChooseDB; closing", msg.Type())
		return
	}

	if err := validateDBName(choose.DBName); err != nil {
		log.Infof("rejecting catalog name %q: %v", choose.DBName, err)
		return
	}

	index, err := funcsdb.Open(s.dbBasePath, choose.DBName, s.numHashes)
	if err != nil {
		log.Errorf("opening catalog %q: %v", choose.DBName, err)
		return
	}
	s.index = index
	s.state = stateReady

	for {
		msg, err := s.recvMessage()
		if err != nil {
			return
		}

		switch m := msg.(type) {
		case *wire.ChooseDB:
			log.Debugf("second ChooseDB on session; closing")
			return
		case *wire.AddFunction:
			if err := s.handleAddFunction(m); err != nil {
				log.Errorf("add function: %v", err)
				return
			}
		case *wire.RequestSimilars:
			if err := s.handleRequestSimilars(m); err != nil {
				log.Errorf("request similars: %v", err)
				return
			}
		default:
			// ResponseSimilars, or any future server->client-only tag,
			// arriving from a client is a protocol violation.
			log.Debugf("unexpected message %s from client; closing", msg.Type())
			return
		}
	}
}

func (s *session) handleAddFunction(m *wire.AddFunction) error {
	return s.index.Add(m.FuncName, m.FuncData, m.FuncComment)
}

func (s *session) handleRequestSimilars(m *wire.RequestSimilars) error {
	results, err := s.index.Similars(m.FuncData, int(m.NumSimilars))
	if err != nil {
		return err
	}

	resp := &wire.ResponseSimilars{}
	if len(results) > 0 {
		resp.Similars = make([]wire.Similar, len(results))
		for i, r := range results {
			resp.Similars[i] = wire.Similar{
				Name:    r.Name,
				Comment: r.Comment,
				Grade:   uint32(r.Grade),
			}
		}
	}

	return s.conn.Send(wire.EncodeMessage(resp))
}

func (s *session) recvMessage() (wire.Message, error) {
	frame, err := s.conn.Recv()
	if err != nil {
		return nil, err
	}
	return wire.DecodeMessage(frame)
}

// close releases the session's Index handle (if one was ever opened) and
// the underlying connection. It mirrors client_handler's "finally: fdb.close()"
// — every exit path through run, whatever reached it, ends up here.
func (s *session) close() {
	if s.index != nil {
		if err := s.index.Close(); err != nil {
			log.Errorf("closing catalog: %v", err)
		}
	}
	_ = s.conn.Close()
	s.state = stateClosed
}
