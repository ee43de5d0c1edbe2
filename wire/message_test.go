package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	msgs := []Message{
		&ChooseDB{DBName: "my_db"},
		&AddFunction{FuncName: "name1", FuncComment: "comment1", FuncData: []byte("...function1 data")},
		&RequestSimilars{FuncData: []byte("...function2 data"), NumSimilars: 3},
		&ResponseSimilars{Similars: []Similar{
			{Name: "name2", Comment: "comment2", Grade: 16},
			{Name: "name1", Comment: "comment1", Grade: 9},
		}},
		&ResponseSimilars{Similars: nil},
	}

	for _, m := range msgs {
		encoded := EncodeMessage(m)
		decoded, err := DecodeMessage(encoded)
		require.NoError(t, err)
		require.Equal(t, m.Type(), decoded.Type())
		require.Equal(t, m, decoded)
	}
}

func TestDecodeMessageUnknownTag(t *testing.T) {
	buf := PutUint32(nil, 99)
	_, err := DecodeMessage(buf)
	require.Error(t, err)
}

func TestDecodeMessageTrailingBytes(t *testing.T) {
	buf := EncodeMessage(&ChooseDB{DBName: "db"})
	buf = append(buf, 0xFF)
	_, err := DecodeMessage(buf)
	require.Error(t, err)
}

func TestDecodeMessageTruncatedTag(t *testing.T) {
	_, err := DecodeMessage([]byte{0, 0})
	require.Error(t, err)
}

func TestMsgTypeString(t *testing.T) {
	require.Equal(t, "ChooseDB", MsgTypeChooseDB.String())
	require.Equal(t, "AddFunction", MsgTypeAddFunction.String())
	require.Equal(t, "RequestSimilars", MsgTypeRequestSimilars.String())
	require.Equal(t, "ResponseSimilars", MsgTypeResponseSimilars.String())
	require.Contains(t, MsgType(42).String(), "Unknown")
}
