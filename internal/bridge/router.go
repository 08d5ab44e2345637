package bridge

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/adrianariton/cellbridge/internal/domain"
	"github.com/adrianariton/cellbridge/internal/logging"
	"github.com/adrianariton/cellbridge/internal/protocol"
	"github.com/adrianariton/cellbridge/internal/tools"
)

// lostConnectionNotice is appended to the transcript exactly once when
// the connection drops unexpectedly.
const lostConnectionNotice = "Connection to the assistant was lost."

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithReplyHook registers a callback invoked for every entry the router
// appends on the orchestrator's behalf (replies and status notices).
func WithReplyHook(fn func(domain.Entry)) RouterOption {
	return func(r *Router) { r.onReply = fn }
}

// Router is the frame dispatch loop. One goroutine reads frames off the
// session; each tool request is executed in its own goroutine so a slow
// document operation never blocks chat traffic.
type Router struct {
	session    *Session
	exec       *tools.Executor
	transcript Transcript
	ready      *ReadyFlag
	log        *logging.Logger
	onReply    func(domain.Entry)
}

// NewRouter wires the dispatch loop over an established session.
func NewRouter(session *Session, exec *tools.Executor, transcript Transcript, ready *ReadyFlag, log *logging.Logger, opts ...RouterOption) *Router {
	r := &Router{
		session:    session,
		exec:       exec,
		transcript: transcript,
		ready:      ready,
		log:        log.Sub("router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SendChat records the user's prompt and forwards it to the orchestrator.
func (r *Router) SendChat(text string) error {
	if err := r.transcript.Append(NewEntry(domain.SenderUser, text, nil)); err != nil {
		r.log.Warn().Err(err).Msg("transcript append failed")
	}

	frame, err := protocol.NewChat(text)
	if err != nil {
		return err
	}
	return r.session.Send(frame)
}

// Run reads frames until the connection drops or ctx is cancelled. A
// transport failure is terminal: the session is marked closed, one notice
// goes to the transcript, and Run returns.
func (r *Router) Run(ctx context.Context) error {
	for {
		msg, err := r.session.ReadMessage()
		if err != nil {
			r.session.markClosed()
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.log.Debug().Msg("connection closed")
				return nil
			}
			r.log.Error().Err(err).Msg("connection lost")
			r.recordBotEntry(lostConnectionNotice, nil)
			return err
		}

		frame, err := protocol.Decode(msg)
		if err != nil {
			r.log.Warn().Err(err).Msg("discarding malformed frame")
			continue
		}

		switch frame.Event {
		case protocol.EventChatResponse:
			var p protocol.ChatResponsePayload
			if err := frame.DecodePayload(&p); err != nil {
				r.log.Warn().Err(err).Msg("discarding malformed chat_response payload")
				continue
			}
			r.recordBotEntry(p.Reply, p.ToolsUsed)

		case protocol.EventStatus:
			var p protocol.StatusPayload
			if err := frame.DecodePayload(&p); err != nil {
				r.log.Warn().Err(err).Msg("discarding malformed status payload")
				continue
			}
			r.recordBotEntry(p.Text, nil)

		case protocol.EventToolRequest:
			var p protocol.ToolRequestPayload
			if err := frame.DecodePayload(&p); err != nil {
				r.log.Warn().Err(err).Msg("discarding malformed tool_request payload")
				continue
			}
			if !r.ready.Ready() {
				r.log.Warn().Str("tool", p.ToolName).Str("requestId", p.RequestID).Msg("dropping tool request, bridge not ready")
				continue
			}
			go r.execute(ctx, tools.Invocation{
				RequestID: p.RequestID,
				ToolName:  p.ToolName,
				Args:      p.Args,
			})

		default:
			r.log.Warn().Str("event", frame.Event).Msg("ignoring unknown event")
		}
	}
}

// execute runs one tool invocation and sends its result back correlated
// by request id. Result ordering across concurrent invocations is
// whatever completion order happens to be.
func (r *Router) execute(ctx context.Context, inv tools.Invocation) {
	result := r.exec.Execute(ctx, inv)

	frame, err := protocol.NewToolResult(inv.RequestID, result)
	if err != nil {
		r.log.Error().Err(err).Str("requestId", inv.RequestID).Msg("encoding tool result failed")
		return
	}
	if err := r.session.Send(frame); err != nil {
		r.log.Warn().Err(err).Str("requestId", inv.RequestID).Msg("sending tool result failed")
	}
}

func (r *Router) recordBotEntry(text string, toolsUsed []string) {
	entry := NewEntry(domain.SenderBot, text, toolsUsed)
	if err := r.transcript.Append(entry); err != nil {
		r.log.Warn().Err(err).Msg("transcript append failed")
	}
	if r.onReply != nil {
		r.onReply(entry)
	}
}
