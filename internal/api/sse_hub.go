package api

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"goverdict/internal"

	"github.com/gin-gonic/gin"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	JobID   string
	Channel chan VerdictEvent
}

// SSEHub fans verdict events out to clients watching a job
type SSEHub struct {
	clients    map[string]map[chan VerdictEvent]bool
	clientsMu  sync.RWMutex
	register   chan SSEClient
	unregister chan SSEClient
	broadcast  chan VerdictEvent
	done       chan struct{}
	closeOnce  sync.Once
	heartbeat  time.Duration
	logger     *internal.Logger
}

// NewSSEHub creates a hub and starts its dispatch loop
func NewSSEHub() *SSEHub {
	return newSSEHub(30 * time.Second)
}

func newSSEHub(heartbeat time.Duration) *SSEHub {
	hub := &SSEHub{
		clients:    make(map[string]map[chan VerdictEvent]bool),
		register:   make(chan SSEClient, 10),
		unregister: make(chan SSEClient, 10),
		broadcast:  make(chan VerdictEvent, 100),
		done:       make(chan struct{}),
		heartbeat:  heartbeat,
		logger:     internal.DefaultLogger.WithComponent("sse"),
	}

	go hub.run()
	return hub
}

func (h *SSEHub) run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.JobID] == nil {
				h.clients[client.JobID] = make(map[chan VerdictEvent]bool)
			}
			h.clients[client.JobID][client.Channel] = true
			h.logger.Debug("client registered for job %s (total clients: %d)",
				client.JobID, len(h.clients[client.JobID]))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.JobID]; exists {
				delete(clients, client.Channel)
				h.logger.Debug("client unregistered from job %s (remaining clients: %d)",
					client.JobID, len(clients))
				if len(clients) == 0 {
					delete(h.clients, client.JobID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for clientChan := range h.clients[event.JobID] {
				select {
				case clientChan <- event:
				default:
					h.logger.Warn("client channel full for job %s, skipping event", event.JobID)
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast sends an event to every client watching the event's job. It
// never blocks; events are dropped when the hub is saturated.
func (h *SSEHub) Broadcast(event VerdictEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast channel full, dropping %s event for job %s", event.EventType, event.JobID)
	}
}

// Close stops the dispatch loop. Connected streams end when their request
// context is cancelled.
func (h *SSEHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// HandleSSE streams verdict events for the job in the :jobId path parameter
func (h *SSEHub) HandleSSE(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job id required", "code": "INVALID_INPUT"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientChan := make(chan VerdictEvent, 10)
	client := SSEClient{JobID: jobID, Channel: clientChan}

	select {
	case h.register <- client:
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream registration failed", "code": "INTERNAL_ERROR"})
		return
	}

	defer func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}()

	c.SSEvent("connected", gin.H{"job_id": jobID})
	c.Writer.Flush()

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-clientChan:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to marshal event: %v", err)
				return true
			}
			c.SSEvent(event.EventType, string(payload))
			return true

		case <-ticker.C:
			c.SSEvent("ping", `{"status":"alive","timestamp":"`+time.Now().UTC().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false

		case <-h.done:
			return false
		}
	})
}

// ActiveJobs returns jobs with at least one connected client
func (h *SSEHub) ActiveJobs() []string {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	jobs := make([]string, 0, len(h.clients))
	for jobID := range h.clients {
		jobs = append(jobs, jobID)
	}
	return jobs
}

// ClientCount returns the number of clients watching a job
func (h *SSEHub) ClientCount(jobID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[jobID])
}
