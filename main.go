package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/BooksWishlist/config"
	"github.com/Govind-619/BooksWishlist/logstats"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/routes"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "bookswishlist",
		Usage: "HTTP API for users, books and their wishlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load (default .env, optional)",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides PORT",
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "storage backend: postgres or memory, overrides STORAGE",
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "directory for log files, overrides LOG_DIR",
			},
		},
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serveCommand,
			},
			{
				Name:  "logstats",
				Usage: "Summarise a day of server logs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "log directory (default LOG_DIR or --log-dir)",
					},
					&cli.StringFlag{
						Name:  "day",
						Usage: "day to analyse as YYYY-MM-DD (default today)",
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 5,
						Usage: "number of entries in the top lists",
					},
				},
				Action: logstatsCommand,
			},
		},
	}
}

// loadConfigWithOverrides loads the config and applies command line flags
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	if storage := c.String("storage"); storage != "" {
		cfg.Storage = storage
	}
	if logDir := c.String("log-dir"); logDir != "" {
		cfg.LogDir = logDir
	}
	return cfg, cfg.Validate()
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := utils.InitLogger(cfg.LogDir, !cfg.IsProduction()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := config.InitTracing(ctx, cfg)
	if err != nil {
		utils.LogError("Failed to initialize tracing: %v", err)
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			utils.LogError("Failed to flush traces: %v", err)
		}
	}()

	store, err := openStore(cfg)
	if err != nil {
		utils.LogError("Failed to open storage: %v", err)
		return err
	}

	addr := c.String("addr")
	if addr == "" {
		addr = ":" + cfg.Port
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.SetupRouter(store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return runServer(ctx, server)
}

func openStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Storage == utils.StorageMemory {
		utils.LogInfo("Using in-memory storage")
		return repository.NewMemoryStore(), nil
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}

// runServer serves until ctx is cancelled, then drains open requests
func runServer(ctx context.Context, server *http.Server) error {
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		utils.LogInfo("Server starting on %s", listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError("Error starting server: %v", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		utils.LogInfo("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func logstatsCommand(c *cli.Context) error {
	day := time.Now()
	if raw := c.String("day"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("invalid --day %q: %w", raw, err)
		}
		day = parsed
	}

	dir := c.String("dir")
	if dir == "" {
		cfg, err := loadConfigWithOverrides(c)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		dir = cfg.LogDir
	}

	stats, err := logstats.Analyze(dir, day)
	if err != nil {
		return err
	}
	logstats.Print(c.App.Writer, stats, c.Int("top"))
	return nil
}
