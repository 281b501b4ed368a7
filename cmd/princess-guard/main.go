package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/audio"
	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/core"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/logger"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/render"
	"github.com/lixenwraith/princess-guard/render/renderers"
	"github.com/lixenwraith/princess-guard/server"
	"github.com/lixenwraith/princess-guard/session"
	"github.com/lixenwraith/princess-guard/status"
)

var (
	configFlag   = flag.String("config", "", "YAML config file")
	variantFlag  = flag.String("variant", "solo", "Rule set: solo or duo")
	listenFlag   = flag.String("listen", "", "HTTP listen address (overrides config)")
	noServerFlag = flag.Bool("no-server", false, "Disable the HTTP ingest and status page")
	replayFlag   = flag.String("replay", "", "JSON lines recording of perception frames")
	loopFlag     = flag.Bool("replay-loop", false, "Restart the recording when it ends")
	muteFlag     = flag.Bool("mute", false, "Start with sound off")
	logLevelFlag = flag.String("log-level", "", "Log level (overrides config)")
	headlessFlag = flag.Bool("headless", false, "Run without the terminal; control over HTTP")
	seedFlag     = flag.Int64("seed", 0, "Fixed random seed, 0 for time based")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configFlag, config.Variant(*variantFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}
	if *listenFlag != "" {
		cfg.Server.Listen = *listenFlag
	}
	if *noServerFlag {
		cfg.Server.Enabled = false
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *logLevelFlag != "" {
		cfg.Log.Level = *logLevelFlag
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()
	core.SetCrashLogger(log)

	log.Info("starting",
		zap.String("variant", string(cfg.Variant)),
		zap.Duration("tick", cfg.TickInterval),
		zap.Bool("server", cfg.Server.Enabled),
		zap.Bool("headless", *headlessFlag))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed, err := perception.NewFeed(cfg.FeedBuffer, log.Named("feed"))
	if err != nil {
		log.Error("create perception feed", zap.Error(err))
		return 1
	}
	defer feed.Close()

	if *replayFlag != "" {
		src := perception.NewReplayFile(*replayFlag, cfg.TickInterval, *loopFlag)
		if err := feed.Start(ctx, src); err != nil {
			log.Warn("replay not started", zap.Error(err))
		}
	}

	sound := audio.NewSoundManager(cfg.Audio, log)
	if err := sound.Initialize(); err == nil {
		defer sound.Cleanup()
	}

	hub := server.NewBroadcaster()
	metrics := status.NewRegistry()
	sess := session.New(cfg, feed, log.Named("session"), session.Options{
		Handlers: []engine.Handler{sound, hub},
		Muter:    sound,
		Seed:     *seedFlag,
		Metrics:  metrics,
	})

	var wg sync.WaitGroup
	if cfg.Server.Enabled {
		srv := server.New(cfg.Server, sess, hub, metrics, log.Named("http"))
		wg.Add(1)
		core.Go(func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				log.Error("http server failed, continuing without it", zap.Error(err))
			}
		})
	}

	sessDone := make(chan error, 1)
	core.Go(func() {
		sessDone <- sess.Run(ctx)
	})

	var code int
	if *headlessFlag {
		code = waitSession(sessDone, log)
	} else {
		code = runTerminal(ctx, sess, log)
		sess.Quit()
		if err := <-sessDone; err != nil {
			log.Error("session ended with error", zap.Error(err))
			code = 1
		}
	}

	stop()
	wg.Wait()
	log.Info("stopped", zap.Int("games", sess.Games()), zap.Uint64("sounds", sound.Played()))
	return code
}

// runTerminal owns the screen until the player quits or ctx ends
func runTerminal(ctx context.Context, sess *session.Session, log *zap.Logger) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Error("create screen", zap.Error(err))
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		log.Error("init screen", zap.Error(err))
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		return 1
	}
	core.SetCrashTerminal(screen)
	defer screen.Fini()

	orch := render.NewRenderOrchestrator(screen)
	renderers.Register(orch)

	term := render.NewTerminal(screen, orch, log.Named("terminal"))
	if err := term.Run(ctx, sess); err != nil {
		log.Error("terminal loop", zap.Error(err))
		return 1
	}
	return 0
}

func waitSession(done <-chan error, log *zap.Logger) int {
	if err := <-done; err != nil {
		log.Error("session ended with error", zap.Error(err))
		return 1
	}
	return 0
}
