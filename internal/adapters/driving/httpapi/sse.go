package httpapi

import (
	"encoding/json"
	"fmt"
	"iter"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// streamEvents writes each event as an SSE data frame and flushes it.
// The response ends after the terminal event or when the client goes away;
// leaving the loop early cancels the upstream LLM request.
func streamEvents(c *gin.Context, events iter.Seq[domain.StreamEvent]) {
	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			logger.Error("encoding stream event: %v", err)
			return
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			logger.Debug("client went away: %v", err)
			return
		}
		c.Writer.Flush()

		if ev.IsTerminal() {
			return
		}
		if ctx.Err() != nil {
			logger.Debug("request %s cancelled mid-stream", RequestID(ctx))
			return
		}
	}
}
