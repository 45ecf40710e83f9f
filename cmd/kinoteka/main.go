package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"kinoteka/bot"
	"kinoteka/bot/state"
	"kinoteka/config"
	"kinoteka/handlers"
	"kinoteka/i18n"
	"kinoteka/internal/database"
	"kinoteka/services/library"
	"kinoteka/services/movies"
	"kinoteka/services/tmdb"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("main.dotenv_load_failed", "error", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("main.config_failed", "error", err)
		os.Exit(1)
	}

	log := setupLogger(cfg)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("main.fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Settings, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	loc, err := i18n.Load(cfg.BotLanguage)
	if err != nil {
		return err
	}

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBLanguage)
	movieService := movies.NewService(tmdbClient, db.Movies)
	libraryService := library.NewService(db.Users)

	b, err := bot.New(cfg.TelegramToken, loc, bot.Deps{
		Movies:  movieService,
		Library: libraryService,
		States:  state.New(),
	}, log)
	if err != nil {
		return err
	}

	if cfg.StatusAddr != "" {
		srv := &http.Server{
			Addr:         cfg.StatusAddr,
			Handler:      handlers.NewRouter(db),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("status.listening", "addr", cfg.StatusAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("status.server_failed", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	return b.Run(ctx)
}

// setupLogger builds the process logger: text to stdout, optionally
// mirrored into a size-rotated file.
func setupLogger(cfg *config.Settings) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
