package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToolRequest(t *testing.T) {
	raw := `{"event":"tool_request","payload":{"tool_name":"write_cells","request_id":"r1","args":{"cells":{"A1":"Hello"}}}}`

	f, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, EventToolRequest, f.Event)

	var p ToolRequestPayload
	require.NoError(t, f.DecodePayload(&p))
	assert.Equal(t, "write_cells", p.ToolName)
	assert.Equal(t, "r1", p.RequestID)
	assert.JSONEq(t, `{"cells":{"A1":"Hello"}}`, string(p.Args))
}

func TestDecodeChatResponse(t *testing.T) {
	raw := `{"event":"chat_response","payload":{"reply":"done","tools_used":["write_cells"]}}`

	f, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, EventChatResponse, f.Event)

	var p ChatResponsePayload
	require.NoError(t, f.DecodePayload(&p))
	assert.Equal(t, "done", p.Reply)
	assert.Equal(t, []string{"write_cells"}, p.ToolsUsed)
}

func TestDecodeChatResponseWithoutTools(t *testing.T) {
	f, err := Decode([]byte(`{"event":"chat_response","payload":{"reply":"hi"}}`))
	require.NoError(t, err)

	var p ChatResponsePayload
	require.NoError(t, f.DecodePayload(&p))
	assert.Equal(t, "hi", p.Reply)
	assert.Empty(t, p.ToolsUsed)
}

func TestDecodeUnknownEventIsNotAnError(t *testing.T) {
	f, err := Decode([]byte(`{"event":"mystery","payload":{"x":1}}`))
	require.NoError(t, err)
	assert.Equal(t, "mystery", f.Event)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.Error(t, err)
}

func TestNewChatWireShape(t *testing.T) {
	f, err := NewChat("hello there")
	require.NoError(t, err)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"chat","payload":{"text":"hello there"}}`, string(data))
}

func TestNewToolResultWireShape(t *testing.T) {
	f, err := NewToolResult("r1", "Success")
	require.NoError(t, err)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"tool_result","request_id":"r1","payload":{"result":"Success"}}`, string(data))
}

func TestNewToolResultWithStructuredResult(t *testing.T) {
	f, err := NewToolResult("r2", map[string]string{"A1": "Hello"})
	require.NoError(t, err)

	var p ToolResultPayload
	require.NoError(t, f.DecodePayload(&p))
	assert.Equal(t, map[string]any{"A1": "Hello"}, p.Result)
}

func TestDecodePayloadNilPayload(t *testing.T) {
	f := Frame{Event: EventStatus}
	var p StatusPayload
	assert.NoError(t, f.DecodePayload(&p))
	assert.Empty(t, p.Text)
}
