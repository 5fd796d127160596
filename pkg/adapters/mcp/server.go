// Package mcp exposes the menu simulator as an MCP server so agent
// tooling can exercise an authored menu the way a handset would:
// start a session, press keys, step back, reset, and inspect the graph.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sautiflow/sauti"
	"github.com/sautiflow/sauti/internal/runtime"
	"github.com/sautiflow/sauti/pkg/domain"
)

// ScreenResponse is the unified tool result: what the handset would
// display plus the session's machine state.
type ScreenResponse struct {
	SessionID string               `json:"session_id"`
	NodeID    string               `json:"node_id"`
	Status    domain.SessionStatus `json:"status"`
	Outcome   domain.OutcomeKind   `json:"outcome,omitempty"`
	Screen    string               `json:"screen"`
	Path      []string             `json:"path"`
}

// Server wraps one menu graph and exposes simulator tools over MCP.
// Sessions live in memory for the lifetime of the server.
type Server struct {
	engine    *runtime.Engine
	mcpServer *server.MCPServer

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewServer creates an MCP server over a graph.
func NewServer(graph *domain.MenuGraph) *Server {
	s := &Server{
		engine:    runtime.NewEngine(graph),
		mcpServer: server.NewMCPServer("sauti-mcp", strings.TrimSpace(sauti.Version)),
		sessions:  make(map[string]*domain.Session),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a simulator session at the menu's root node."),
		mcp.WithString("session_id", mcp.Description("Session id to use (optional; generated when omitted)")),
		mcp.WithString("subscriber_id", mcp.Description("Subscriber phone number for the session record (optional)")),
		mcp.WithOutputSchema[ScreenResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("press_key",
		mcp.WithDescription("Send one keystroke to an active session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_session")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Raw keystroke, typically a digit")),
		mcp.WithOutputSchema[ScreenResponse](),
	), mcp.NewStructuredToolHandler(s.handlePress))

	s.mcpServer.AddTool(mcp.NewTool("go_back",
		mcp.WithDescription("Undo the last step, restoring the previous node."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
		mcp.WithOutputSchema[ScreenResponse](),
	), mcp.NewStructuredToolHandler(s.handleBack))

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Clear a session back to its unstarted state and restart it."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
		mcp.WithOutputSchema[ScreenResponse](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("get_menu",
		mcp.WithDescription("Get the full menu graph for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Graph())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScreenResponse, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	subscriberID, _ := args["subscriber_id"].(string)

	sess := domain.NewSession(sessionID, s.engine.Graph().ApplicationID, subscriberID, time.Now())
	sess, err := s.engine.Start(ctx, sess)
	if err != nil {
		return ScreenResponse{}, fmt.Errorf("start failed: %w", err)
	}

	s.put(sess)
	return s.respond(sess, domain.Outcome{})
}

func (s *Server) handlePress(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScreenResponse, error) {
	sess, err := s.get(args)
	if err != nil {
		return ScreenResponse{}, err
	}
	key, _ := args["key"].(string)

	sess, outcome, err := s.engine.Step(ctx, sess, key)
	if err != nil {
		return ScreenResponse{}, fmt.Errorf("step failed: %w", err)
	}

	s.put(sess)
	return s.respond(sess, outcome)
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScreenResponse, error) {
	sess, err := s.get(args)
	if err != nil {
		return ScreenResponse{}, err
	}

	sess = s.engine.Back(ctx, sess)
	s.put(sess)
	return s.respond(sess, domain.Outcome{})
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScreenResponse, error) {
	sess, err := s.get(args)
	if err != nil {
		return ScreenResponse{}, err
	}

	sess = s.engine.Reset(sess)
	sess, startErr := s.engine.Start(ctx, sess)
	if startErr != nil {
		return ScreenResponse{}, fmt.Errorf("restart failed: %w", startErr)
	}
	s.put(sess)
	return s.respond(sess, domain.Outcome{})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("sauti://menu", "Menu Graph Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Graph())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "sauti://menu",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) get(args map[string]interface{}) (*domain.Session, error) {
	sessionID, _ := args["session_id"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", sessionID, domain.ErrSessionNotFound)
	}
	return sess, nil
}

func (s *Server) put(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = sess
}

func (s *Server) respond(sess *domain.Session, outcome domain.Outcome) (ScreenResponse, error) {
	screen, err := runtime.Screen(s.engine.Graph(), sess.CurrentNodeID)
	if err != nil {
		return ScreenResponse{}, err
	}
	return ScreenResponse{
		SessionID: sess.SessionID,
		NodeID:    sess.CurrentNodeID,
		Status:    sess.Status,
		Outcome:   outcome.Kind,
		Screen:    screen,
		Path:      sess.NavigationPath(),
	}, nil
}
