package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/pagesmith/internal/events"
)

// eventBuffer bounds how far a slow SSE client may lag before the bus drops
// it.
const eventBuffer = 64

// handleEventStream bridges the progress bus onto a server-sent event stream.
// Each client gets its own subscription; disconnecting unsubscribes it. A
// greeting event confirms the stream is live before any pipeline runs.
func (s *Server) handleEventStream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := s.bus.Subscribe(eventBuffer)
	defer sub.Close()

	s.logger.Debug("event stream client connected",
		zap.String("subscription_id", sub.ID()),
		zap.Int("subscribers", s.bus.SubscriberCount()),
	)

	greeting := events.Event{
		Level:     events.LevelInfo,
		Message:   "Conectado al flujo de eventos",
		Timestamp: time.Now().UTC(),
	}
	if err := writeEvent(w, greeting); err != nil {
		return nil
	}
	w.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("event stream client disconnected",
				zap.String("subscription_id", sub.ID()))
			return nil
		case ev, ok := <-sub.C:
			if !ok {
				// Dropped by the bus for lagging.
				return nil
			}
			if err := writeEvent(w, ev); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeEvent(w io.Writer, ev events.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
