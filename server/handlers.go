package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/status"
)

var errFeedFull = errors.New("perception feed full")

func (s *Server) landmarks(w http.ResponseWriter, r *http.Request) {
	var frame perception.Frame
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&frame); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode frame: %w", err))
		return
	}
	frame.Source = httpSource

	if !s.game.Publish(frame) {
		writeError(w, http.StatusServiceUnavailable, errFeedFull)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	s.control(w, "start", s.game.Start)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	s.control(w, "restart", s.game.Restart)
}

func (s *Server) control(w http.ResponseWriter, name string, fn func() error) {
	if err := fn(); err != nil {
		code := statusFor(err)
		s.log.Debug("control rejected", zap.String("control", name), zap.Error(err))
		writeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) metricsJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Export())
}

// events streams game events as server-sent events. The first message is
// the current snapshot under "state".
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	subscribers := s.metrics.Ints.Get(status.SSESubscribers)
	sub := s.hub.Subscribe()
	subscribers.Add(1)
	defer func() {
		s.hub.Unsubscribe(sub)
		subscribers.Add(-1)
	}()

	if data, err := json.Marshal(s.game.Snapshot()); err == nil {
		writeSSE(w, "state", string(data))
	}
	flusher.Flush()

	keepAlive := time.NewTicker(s.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub:
			if !ok {
				return
			}
			writeSSE(w, msg.Event, msg.Data)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, data string) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(data, "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}
