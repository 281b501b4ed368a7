package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/status"
)

type fakeGame struct {
	mu         sync.Mutex
	frames     []perception.Frame
	full       bool
	startErr   error
	restartErr error
	starts     int
	snap       engine.Snapshot
}

func (g *fakeGame) Publish(f perception.Frame) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.full {
		return false
	}
	g.frames = append(g.frames, f)
	return true
}

func (g *fakeGame) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.starts++
	return g.startErr
}

func (g *fakeGame) Restart() error { return g.restartErr }

func (g *fakeGame) Snapshot() engine.Snapshot { return g.snap }

func newTestServer(g *fakeGame) (*Server, *Broadcaster) {
	hub := NewBroadcaster()
	return New(config.ServerConfig{Enabled: true, Listen: "127.0.0.1:0"}, g, hub, nil, nil), hub
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestLandmarksAccepted(t *testing.T) {
	g := &fakeGame{}
	s, _ := newTestServer(g)

	body := `{"hands":[{"handedness":"Right","landmarks":[{"x":0.1,"y":0.2,"z":0}]}],"face":{"landmarks":[{"x":0.5,"y":0.5}]}}`
	rec := do(t, s, http.MethodPost, "/api/landmarks", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if len(g.frames) != 1 {
		t.Fatalf("published %d frames", len(g.frames))
	}
	f := g.frames[0]
	if f.Source != httpSource || len(f.Hands) != 1 || f.Hands[0].Handedness != "Right" {
		t.Fatalf("unexpected frame %+v", f)
	}
	if f.Hands[0].Landmarks[0].X != 0.1 || f.Face == nil {
		t.Fatalf("landmarks not decoded: %+v", f)
	}
}

func TestLandmarksEmptyFrameAccepted(t *testing.T) {
	g := &fakeGame{}
	s, _ := newTestServer(g)
	if rec := do(t, s, http.MethodPost, "/api/landmarks", `{}`); rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLandmarksMalformed(t *testing.T) {
	g := &fakeGame{}
	s, _ := newTestServer(g)
	rec := do(t, s, http.MethodPost, "/api/landmarks", `{"hands":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(g.frames) != 0 {
		t.Fatal("malformed body reached the feed")
	}
}

func TestLandmarksFeedFull(t *testing.T) {
	s, _ := newTestServer(&fakeGame{full: true})
	if rec := do(t, s, http.MethodPost, "/api/landmarks", `{}`); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestControlStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusAccepted},
		{"wrong phase", fmt.Errorf("%w: start from running", engine.ErrInvalidTransition), http.StatusConflict},
		{"not ready", engine.ErrNotReady, http.StatusPreconditionFailed},
		{"stopped", engine.ErrSchedulerStopped, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(&fakeGame{startErr: tc.err, restartErr: tc.err})
			if rec := do(t, s, http.MethodPost, "/api/start", ""); rec.Code != tc.want {
				t.Fatalf("start status = %d, want %d", rec.Code, tc.want)
			}
			if rec := do(t, s, http.MethodPost, "/api/restart", ""); rec.Code != tc.want {
				t.Fatalf("restart status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestStateJSON(t *testing.T) {
	g := &fakeGame{snap: engine.Snapshot{PhaseName: "running", Score: 250, Session: "abc"}}
	s, _ := newTestServer(g)

	rec := do(t, s, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["phase"] != "running" || got["score"] != float64(250) {
		t.Fatalf("unexpected state %v", got)
	}
}

func TestStatusPage(t *testing.T) {
	g := &fakeGame{snap: engine.Snapshot{PhaseName: "game_over", Score: 300, ScoreLabel: "Puntos", Session: "<x>"}}
	s, _ := newTestServer(g)

	rec := do(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"game_over", "<dt>Puntos</dt>", ">300<", "&lt;x&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestEventStream(t *testing.T) {
	g := &fakeGame{snap: engine.Snapshot{PhaseName: "running"}}
	s, hub := newTestServer(g)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var event, data string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read stream: %v", err)
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case line == "":
				if event != "" {
					return event, data
				}
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			}
		}
	}

	if ev, _ := readEvent(); ev != "state" {
		t.Fatalf("first event %q, want state", ev)
	}

	// The subscription is registered before the first event is written
	hub.HandleEvent(engine.GameEvent{Type: engine.EventScoreChanged, Tick: 9, Score: 150})

	ev, data := readEvent()
	if ev != "score" {
		t.Fatalf("event %q, want score", ev)
	}
	var payload eventPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Score != 150 || payload.Tick != 9 {
		t.Fatalf("payload %+v", payload)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(&fakeGame{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsJSON(t *testing.T) {
	reg := status.NewRegistry()
	reg.Ints.Get(status.EngineTicks).Store(42)
	reg.Strings.Get(status.GamePhase).Store("idle")
	s := New(config.ServerConfig{Listen: "127.0.0.1:0"}, &fakeGame{}, NewBroadcaster(), reg, nil)

	rec := do(t, s, http.MethodGet, "/api/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got[status.EngineTicks] != float64(42) || got[status.GamePhase] != "idle" {
		t.Fatalf("unexpected metrics %v", got)
	}
}

func TestScoreParts(t *testing.T) {
	cases := []struct {
		snap         engine.Snapshot
		label, value string
	}{
		{engine.Snapshot{Score: 50}, "Score", "50"},
		{engine.Snapshot{Score: 7, ScoreLabel: "Skor"}, "Skor", "7"},
		{engine.Snapshot{Score: 1, ScoreLabel: "a: b"}, "a", "b: 1"},
	}
	for _, tc := range cases {
		label, value := scoreParts(tc.snap)
		if label != tc.label || value != tc.value {
			t.Errorf("scoreParts(%q, %d) = (%q, %q), want (%q, %q)",
				tc.snap.ScoreLabel, tc.snap.Score, label, value, tc.label, tc.value)
		}
	}
}
