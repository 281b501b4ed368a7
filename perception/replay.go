package perception

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// replayLine is one JSON line of a recording
type replayLine struct {
	Frame
	DelayMS int `json:"delay_ms,omitempty"`
}

// ReplaySource publishes recorded frames from JSON lines, one frame per
// line. A line's delay_ms is waited before it is published; lines without it
// use the source's default interval.
type ReplaySource struct {
	name     string
	open     func() (io.ReadCloser, error)
	interval time.Duration
	loop     bool
}

// NewReplayFile reads recordings from path
func NewReplayFile(path string, interval time.Duration, loop bool) *ReplaySource {
	return &ReplaySource{
		name:     "replay:" + path,
		open:     func() (io.ReadCloser, error) { return os.Open(path) },
		interval: interval,
		loop:     loop,
	}
}

// NewReplayString replays an in-memory recording, mostly for tests and demos
func NewReplayString(name, data string, interval time.Duration) *ReplaySource {
	return &ReplaySource{
		name:     "replay:" + name,
		open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(data)), nil },
		interval: interval,
	}
}

func (r *ReplaySource) Name() string {
	return r.name
}

// Run implements Source
func (r *ReplaySource) Run(ctx context.Context, feed *Feed) error {
	for {
		if err := r.playOnce(ctx, feed); err != nil {
			return err
		}
		if !r.loop {
			return nil
		}
	}
}

func (r *ReplaySource) playOnce(ctx context.Context, feed *Feed) error {
	rc, err := r.open()
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer rc.Close()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var line replayLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			return fmt.Errorf("recording line %d: %w", lineNo, err)
		}

		wait := r.interval
		if line.DelayMS > 0 {
			wait = time.Duration(line.DelayMS) * time.Millisecond
		}
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		frame := line.Frame
		frame.Source = r.name
		feed.Publish(frame)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read recording: %w", err)
	}
	return nil
}
