package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leonelquinteros/gotext"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/input"
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/config"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/renderer/tui"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/server"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/session"
)

//go:embed data/seed.json
var bundledMazes []byte

const usage = `usage: maze [flags] [play|serve|seed]

  play   play one level in the terminal (default)
  serve  serve sessions over websockets
  seed   write the bundled mazes into the configured store

flags:
`

// backend is where mazes come from and where scores go
type backend struct {
	provider content.Provider
	scorer   content.Scorer
	scores   server.ScoreLister // nil for remote content
	store    content.Storage    // nil for remote content
}

func (b *backend) Close() {
	if b.store != nil {
		b.store.Close()
	}
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	var store content.Storage
	switch cfg.Content.Source {
	case config.SourceHTTP:
		client := content.NewHTTPClient(cfg.Content.APIURL, cfg.Content.RequestTimeout, cfg.Content.APIToken)
		return &backend{provider: client, scorer: client}, nil
	case config.SourcePostgres:
		s, err := content.NewPostgresStore(ctx, cfg.Content.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		s, err := content.NewJSONStore(cfg.Content.DataFile)
		if err != nil {
			return nil, err
		}
		store = s
	}
	p := content.NewStoreProvider(store)
	return &backend{provider: p, scorer: p, scores: p, store: store}, nil
}

func seedStore(ctx context.Context, b *backend, overwrite bool, logger logging.Logger) error {
	if b.store == nil {
		return errors.New("remote content cannot be seeded")
	}
	entries, err := content.ParseSeed(bundledMazes)
	if err != nil {
		return err
	}
	n, err := content.Seed(ctx, b.store, entries, overwrite)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Infof("seeded %d of %d bundled mazes", n, len(entries))
	}
	return nil
}

func main() {
	configPath := flag.String("config", os.Getenv("MAZE_CONFIG"), "path to a YAML config file")
	source := flag.String("source", "", "content source: json, postgres or http")
	gameID := flag.Int("game", 0, "game id to play")
	level := flag.String("level", "", "level to play (FIRST, SECOND or THIRD)")
	player := flag.Int("player", 0, "player id scores are submitted for")
	addr := flag.String("addr", "", "listen address for serve")
	lang := flag.String("lang", "", "message language, e.g. en or ko")
	showMap := flag.Bool("map", true, "draw the lit part of the maze after each move")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Content.Source = *source
		case "game":
			cfg.Game.GameID = *gameID
		case "level":
			cfg.Game.Level = *level
		case "player":
			cfg.Game.PlayerID = *player
		case "addr":
			cfg.Server.Addr = *addr
		case "lang":
			cfg.Locale.Language = *lang
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	gotext.Configure(cfg.Locale.Dir, cfg.Locale.Language, "default")

	if err := run(cfg, flag.Arg(0), *showMap); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logging.NewLogger("main").Errorf("%v", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("unknown command")

// run executes one subcommand. Cleanup is deferred here so that main can
// exit with a status once everything is released.
func run(cfg config.Config, cmd string, showMap bool) error {
	switch cmd {
	case "", "play", "serve", "seed":
	default:
		return fmt.Errorf("%w %q", errUsage, cmd)
	}

	logger := logging.NewLogger("main")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s content: %w", cfg.Content.Source, err)
	}
	defer b.Close()

	switch cmd {
	case "serve":
		err = serve(ctx, cfg, b, logger)
	case "seed":
		err = seedStore(ctx, b, true, logger)
	default:
		err = play(ctx, cfg, b, showMap, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		if cmd == "" {
			cmd = "play"
		}
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

func play(ctx context.Context, cfg config.Config, b *backend, showMap bool, logger logging.Logger) error {
	if b.store != nil && cfg.Content.Source == config.SourceJSON {
		if err := seedStore(ctx, b, false, logger); err != nil {
			return err
		}
	}

	e, err := session.Load(ctx, session.Deps{
		Provider: b.provider,
		Scorer:   b.scorer,
		Identity: content.StaticIdentity(cfg.Game.PlayerID),
		Presence: content.PresenceFunc(func(active bool) {
			logger.Debugf("session active: %v", active)
		}),
		Logger: logging.NewLogger("session"),
	}, session.Options{
		GameID:       cfg.Game.GameID,
		Level:        cfg.Game.Level,
		TrapSeconds:  cfg.Game.TrapSeconds,
		TickInterval: cfg.Game.TickInterval,
	})
	if err != nil {
		return err
	}
	defer e.Close()

	r := tui.New(os.Stdout, showMap && input.IsInteractive())
	r.Init()

	res, won, err := tui.Play(ctx, e, input.NewLineReader(os.Stdin), r)
	if err != nil {
		return err
	}
	if won {
		logger.Infof("game %d level %s finished with score %d (saved: %v)", res.GameID, res.Level, res.Score, res.Saved)
	}
	return nil
}

func serve(ctx context.Context, cfg config.Config, b *backend, logger logging.Logger) error {
	srv := server.New(server.Options{
		Provider:     b.provider,
		Scorer:       b.scorer,
		Scores:       b.scores,
		TrapSeconds:  cfg.Game.TrapSeconds,
		TickInterval: cfg.Game.TickInterval,
		Logger:       logging.NewLogger("server"),
	})
	if b.store != nil && cfg.Content.Source == config.SourceJSON {
		if err := seedStore(ctx, b, false, logger); err != nil {
			return err
		}
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	srv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
