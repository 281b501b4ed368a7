package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/render/renderers"
)

// statusScript keeps the page's score and phase current from the event stream
const statusScript = `<script>
const es = new EventSource("/api/events");
const score = document.getElementById("score");
const phase = document.getElementById("phase");
es.addEventListener("score", e => { score.textContent = JSON.parse(e.data).score; });
es.addEventListener("started", () => { phase.textContent = "running"; });
es.addEventListener("gameover", e => { phase.textContent = "game_over"; score.textContent = JSON.parse(e.data).score; });
</script>`

// StatusPage renders the snapshot as a small HTML page
func StatusPage(snap engine.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		label, value := scoreParts(snap)
		_, err := fmt.Fprintf(w, `<!doctype html>
<html><head><meta charset="utf-8"><title>Princess Guard</title></head>
<body>
<h1>Princess Guard</h1>
<dl>
<dt>Session</dt><dd>%s</dd>
<dt>Variant</dt><dd>%s</dd>
<dt>Phase</dt><dd id="phase">%s</dd>
<dt>%s</dt><dd id="score">%s</dd>
<dt>Enemies</dt><dd>%d</dd>
<dt>Kills</dt><dd>%d</dd>
<dt>Bonuses</dt><dd>%d</dd>
<dt>Tracking</dt><dd>%s</dd>
</dl>
%s
</body></html>
`,
			templ.EscapeString(snap.Session),
			templ.EscapeString(string(snap.Variant)),
			templ.EscapeString(snap.PhaseName),
			templ.EscapeString(label),
			templ.EscapeString(value),
			len(snap.Enemies), snap.Kills, snap.Bonuses,
			readyText(snap.Ready),
			statusScript,
		)
		return err
	})
}

// scoreParts splits the "label: value" score line
func scoreParts(snap engine.Snapshot) (string, string) {
	label, value, _ := strings.Cut(renderers.ScoreText(snap), ": ")
	return label, value
}

func readyText(ready bool) string {
	if ready {
		return "ready"
	}
	return "waiting"
}

func (s *Server) statusPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, StatusPage(s.game.Snapshot()))
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
