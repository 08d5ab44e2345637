// Package protocol defines the JSON frame protocol spoken with the
// orchestrator over the persistent WebSocket connection.
package protocol

import "encoding/json"

// Event tags for frames on the wire.
const (
	// Outbound (bridge → orchestrator)
	EventChat       = "chat"
	EventToolResult = "tool_result"

	// Inbound (orchestrator → bridge)
	EventChatResponse = "chat_response"
	EventStatus       = "status"
	EventToolRequest  = "tool_request"
)

// Frame is the envelope for every message on the connection. The Event
// field discriminates the payload shape. RequestID is set only on
// tool_result frames; tool_request carries its id inside the payload.
type Frame struct {
	Event     string          `json:"event"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// ChatPayload carries an outbound user prompt.
type ChatPayload struct {
	Text string `json:"text"`
}

// ChatResponsePayload is the orchestrator's reply to a chat frame.
type ChatResponsePayload struct {
	Reply     string   `json:"reply"`
	ToolsUsed []string `json:"tools_used,omitempty"`
}

// StatusPayload is a transient progress notice from the orchestrator.
type StatusPayload struct {
	Text string `json:"text"`
}

// ToolRequestPayload asks the bridge to execute one registered operation.
// Args pass through to the operation untouched; each operation does its
// own validation.
type ToolRequestPayload struct {
	ToolName  string          `json:"tool_name"`
	RequestID string          `json:"request_id"`
	Args      json.RawMessage `json:"args,omitempty"`
}

// ToolResultPayload carries the outcome of a tool request. Result holds
// either the operation's return value or a stringified error; the payload
// shape is the only distinguisher, there is no separate status field.
type ToolResultPayload struct {
	Result any `json:"result"`
}

// Decode parses raw bytes into a Frame.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// DecodePayload unmarshals a frame's payload into the given target.
func (f Frame) DecodePayload(target any) error {
	if f.Payload == nil {
		return nil
	}
	return json.Unmarshal(f.Payload, target)
}

// NewChat creates an outbound chat frame.
func NewChat(text string) (Frame, error) {
	return newFrame(EventChat, "", ChatPayload{Text: text})
}

// NewToolResult creates an outbound tool_result frame correlated to the
// given request id.
func NewToolResult(requestID string, result any) (Frame, error) {
	return newFrame(EventToolResult, requestID, ToolResultPayload{Result: result})
}

func newFrame(event, requestID string, payload any) (Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Event:     event,
		RequestID: requestID,
		Payload:   raw,
	}, nil
}
