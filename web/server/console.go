package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-minirt/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// maxConsoleMessages bounds the history kept per render
const maxConsoleMessages = 50

// RenderLogger implements core.Logger for a single render: every message is
// tagged with the render ID, forwarded to the server logger and kept in a
// bounded history
type RenderLogger struct {
	renderID string
	base     core.Logger

	mu       sync.Mutex
	messages []ConsoleMessage
}

// NewRenderLogger creates a new logger for a specific render
func NewRenderLogger(renderID string, base core.Logger) *RenderLogger {
	return &RenderLogger{
		renderID: renderID,
		base:     base,
	}
}

// Printf implements core.Logger interface
func (rl *RenderLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if rl.base != nil {
		rl.base.Printf("[%s] %s", rl.renderID, message)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.messages) == maxConsoleMessages {
		// Drop the oldest
		copy(rl.messages, rl.messages[1:])
		rl.messages = rl.messages[:len(rl.messages)-1]
	}
	rl.messages = append(rl.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Messages returns a copy of the retained messages, oldest first
func (rl *RenderLogger) Messages() []ConsoleMessage {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return append([]ConsoleMessage(nil), rl.messages...)
}

// maxRecentRenders bounds how many render histories the server keeps
const maxRecentRenders = 32

// renderLogs keeps the loggers of the most recent renders by render ID
type renderLogs struct {
	mu      sync.Mutex
	order   []string
	loggers map[string]*RenderLogger
}

func newRenderLogs() *renderLogs {
	return &renderLogs{loggers: make(map[string]*RenderLogger)}
}

// add stores a logger, evicting the oldest once full
func (rl *renderLogs) add(logger *RenderLogger) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.order) == maxRecentRenders {
		delete(rl.loggers, rl.order[0])
		rl.order = rl.order[1:]
	}
	rl.order = append(rl.order, logger.renderID)
	rl.loggers[logger.renderID] = logger
}

func (rl *renderLogs) get(renderID string) (*RenderLogger, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	logger, ok := rl.loggers[renderID]
	return logger, ok
}

// handleRenderLogs returns the console history of a recent render
func (s *Server) handleRenderLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	renderID := r.URL.Query().Get("id")
	if renderID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	logger, ok := s.logs.get(renderID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown render: "+renderID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       renderID,
		"messages": logger.Messages(),
	})
}
