package wire

import "fmt"

// MsgType identifies a message's wire-stable tag.
type MsgType uint32

// The four catalog1 message types. Tags are wire-stable: never renumber an
// existing entry.
const (
	// MsgTypeChooseDB selects the catalog a session operates on.
	// Direction: client -> server.
	MsgTypeChooseDB MsgType = 0

	// MsgTypeAddFunction adds or replaces a Record in the chosen catalog.
	// Direction: client -> server.
	MsgTypeAddFunction MsgType = 1

	// MsgTypeRequestSimilars asks for the top-k most similar Records to a
	// query body. Direction: client -> server.
	MsgTypeRequestSimilars MsgType = 2

	// MsgTypeResponseSimilars carries the ordered results of a
	// RequestSimilars. Direction: server -> client.
	MsgTypeResponseSimilars MsgType = 3
)

func (t MsgType) String() string {
	switch t {
	case MsgTypeChooseDB:
		return "ChooseDB"
	case MsgTypeAddFunction:
		return "AddFunction"
	case MsgTypeRequestSimilars:
		return "RequestSimilars"
	case MsgTypeResponseSimilars:
		return "ResponseSimilars"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// Message is implemented by every concrete catalog1 message type. Encode
// and Decode handle only the message body; the type tag itself is framed
// by EncodeMessage/DecodeMessage below.
type Message interface {
	// Type returns this message's wire tag.
	Type() MsgType
	// Encode appends this message's body to buf and returns the result.
	Encode(buf []byte) []byte
	// Decode populates the message from data, returning unconsumed bytes.
	Decode(data []byte) ([]byte, error)
}

// ChooseDB is the client -> server message that selects a catalog.
type ChooseDB struct {
	DBName string
}

func (m *ChooseDB) Type() MsgType { return MsgTypeChooseDB }

func (m *ChooseDB) Encode(buf []byte) []byte {
	return PutString(buf, m.DBName)
}

func (m *ChooseDB) Decode(data []byte) ([]byte, error) {
	s, rest, err := GetString(data)
	if err != nil {
		return nil, err
	}
	m.DBName = s
	return rest, nil
}

// AddFunction is the client -> server message that adds or replaces a
// Record in the chosen catalog.
type AddFunction struct {
	FuncName    string
	FuncComment string
	FuncData    []byte
}

func (m *AddFunction) Type() MsgType { return MsgTypeAddFunction }

func (m *AddFunction) Encode(buf []byte) []byte {
	buf = PutString(buf, m.FuncName)
	buf = PutString(buf, m.FuncComment)
	buf = PutBlob(buf, m.FuncData)
	return buf
}

func (m *AddFunction) Decode(data []byte) ([]byte, error) {
	name, rest, err := GetString(data)
	if err != nil {
		return nil, err
	}
	comment, rest, err := GetString(rest)
	if err != nil {
		return nil, err
	}
	body, rest, err := GetBlob(rest)
	if err != nil {
		return nil, err
	}
	m.FuncName, m.FuncComment, m.FuncData = name, comment, body
	return rest, nil
}

// RequestSimilars is the client -> server message asking for the top-k
// Records most similar to FuncData.
type RequestSimilars struct {
	FuncData    []byte
	NumSimilars uint32
}

func (m *RequestSimilars) Type() MsgType { return MsgTypeRequestSimilars }

func (m *RequestSimilars) Encode(buf []byte) []byte {
	buf = PutBlob(buf, m.FuncData)
	buf = PutUint32(buf, m.NumSimilars)
	return buf
}

func (m *RequestSimilars) Decode(data []byte) ([]byte, error) {
	body, rest, err := GetBlob(data)
	if err != nil {
		return nil, err
	}
	n, rest, err := GetUint32(rest)
	if err != nil {
		return nil, err
	}
	m.FuncData, m.NumSimilars = body, n
	return rest, nil
}

// Similar is one entry of a ResponseSimilars message.
type Similar struct {
	Name    string
	Comment string
	Grade   uint32
}

// ResponseSimilars is the server -> client message carrying the ordered
// results of a RequestSimilars.
type ResponseSimilars struct {
	Similars []Similar
}

func (m *ResponseSimilars) Type() MsgType { return MsgTypeResponseSimilars }

func (m *ResponseSimilars) Encode(buf []byte) []byte {
	buf = PutUint32(buf, uint32(len(m.Similars)))
	for _, s := range m.Similars {
		buf = PutString(buf, s.Name)
		buf = PutString(buf, s.Comment)
		buf = PutUint32(buf, s.Grade)
	}
	return buf
}

func (m *ResponseSimilars) Decode(data []byte) ([]byte, error) {
	n, rest, err := GetUint32(data)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		m.Similars = nil
		return rest, nil
	}

	sims := make([]Similar, n)
	for i := range sims {
		name, r, err := GetString(rest)
		if err != nil {
			return nil, err
		}
		comment, r, err := GetString(r)
		if err != nil {
			return nil, err
		}
		grade, r, err := GetUint32(r)
		if err != nil {
			return nil, err
		}
		sims[i] = Similar{Name: name, Comment: comment, Grade: grade}
		rest = r
	}
	m.Similars = sims
	return rest, nil
}

// newMessage constructs a zero-valued Message for the given tag, or nil if
// the tag is unknown. It is the static-type replacement for the Python
// reference's dynamic Msg/MsgDef registry: one concrete Go type per tag.
func newMessage(t MsgType) Message {
	switch t {
	case MsgTypeChooseDB:
		return &ChooseDB{}
	case MsgTypeAddFunction:
		return &AddFunction{}
	case MsgTypeRequestSimilars:
		return &RequestSimilars{}
	case MsgTypeResponseSimilars:
		return &ResponseSimilars{}
	default:
		return nil
	}
}

// EncodeMessage serializes msg to a full message frame payload: its type
// tag, followed by its body.
func EncodeMessage(msg Message) []byte {
	buf := PutUint32(nil, uint32(msg.Type()))
	return msg.Encode(buf)
}

// DecodeMessage deserializes a message frame payload into a concrete
// Message. It fails with a CodecError if the tag is unknown, the body is
// truncated, or trailing bytes remain after decoding (a well-formed message
// consumes its payload exactly).
func DecodeMessage(data []byte) (Message, error) {
	tag, rest, err := GetUint32(data)
	if err != nil {
		return nil, newCodecError("decode message tag", err)
	}

	msg := newMessage(MsgType(tag))
	if msg == nil {
		return nil, newCodecError("decode message", fmt.Errorf("unknown message type %d", tag))
	}

	remaining, err := msg.Decode(rest)
	if err != nil {
		return nil, err
	}
	if len(remaining) != 0 {
		return nil, newCodecError("decode message", fmt.Errorf("%d trailing bytes after %s body", len(remaining), msg.Type()))
	}
	return msg, nil
}
