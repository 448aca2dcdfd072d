package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// ssePollInterval is how often the event stream checks the record count.
var ssePollInterval = 3 * time.Second

// countEvent tells the page how many records are stored.
type countEvent struct {
	StoreKey string `json:"store_key"`
	Count    int64  `json:"count"`
}

// handleSSE streams a "records" event whenever the stored record count
// changes, so an open page notices matches saved from the terminal.
func (s *server) handleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	last, err := s.store.Count(ctx)
	if err != nil {
		writeSSE(c.Writer, "error", map[string]string{"error": err.Error()})
		c.Writer.Flush()
		return
	}
	writeSSE(c.Writer, "connected", countEvent{StoreKey: s.store.Key(), Count: last})
	c.Writer.Flush()

	ticker := time.NewTicker(ssePollInterval)
	heartbeat := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			writeSSE(c.Writer, "heartbeat", map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			c.Writer.Flush()
		case <-ticker.C:
			n, err := s.store.Count(ctx)
			if err != nil || n == last {
				continue
			}
			last = n
			// Exports rendered before the change are stale.
			s.exports.Flush()
			writeSSE(c.Writer, "records", countEvent{StoreKey: s.store.Key(), Count: n})
			c.Writer.Flush()
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
