package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/config"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/database"
	"github.com/junaidrashid-git/storefront-api/eventbus"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/routes"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "storefront-api",
		Usage: "Storefront API with an inventory-aware cart ledger",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: ".", Usage: "directory holding app.env"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "migrate the schema and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update database tables",
				Action: migrate,
			},
			{
				Name:  "reconcile",
				Usage: "report stock counters that disagree with carts and orders",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repair", Usage: "rewrite drifted counters"},
				},
				Action: reconcile,
			},
			{
				Name:  "create-admin",
				Usage: "create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
				},
				Action: createAdmin,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("❌ Command failed")
	}
}

func setup(c *cli.Context) (config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, nil, fmt.Errorf("load configuration: %w", err)
	}

	// Set log level from config
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, db, nil
}

func newLedger(cfg config.Config, db *gorm.DB) *ledger.Ledger {
	return ledger.New(db, ledger.Options{
		MaxRetries:    cfg.StockConflictRetries,
		RetryInterval: cfg.StockRetryInterval,
	})
}

func serve(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	var publisher eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.OrderExchange)
		if err != nil {
			// Orders still work without the broker; events are dropped.
			log.Error().Err(err).Msg("❌ RabbitMQ unavailable, order events disabled")
		} else {
			publisher = rmq
		}
	}
	defer publisher.Close()

	gin.SetMode(gin.ReleaseMode)
	engine := routes.NewEngine(routes.Deps{
		Config:    cfg,
		DB:        db,
		Ledger:    newLedger(cfg, db),
		Hub:       orderControllers.NewHub(),
		Publisher: publisher,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("appName", cfg.AppName).Msgf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Failed to start server")
		}
	}()

	// --- Wait for shutdown signal ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Application shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func migrate(c *cli.Context) error {
	_, db, err := setup(c)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("✅ Schema up to date")
	return nil
}

func reconcile(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	defer database.Close(db)

	drifts, err := newLedger(cfg, db).Reconcile(c.Context, c.Bool("repair"))
	if err != nil {
		return err
	}
	for _, d := range drifts {
		fmt.Fprintf(c.App.Writer, "product %d %q: total=%d remaining=%d sold=%d claimed=%d repaired=%t\n",
			d.ProductID, d.Name, d.Total, d.Remaining, d.Sold, d.Claimed, d.Repaired)
	}
	log.Info().Int("drifted", len(drifts)).Bool("repair", c.Bool("repair")).Msg("✅ Reconcile finished")
	return nil
}

func createAdmin(c *cli.Context) error {
	_, db, err := setup(c)
	if err != nil {
		return err
	}
	defer database.Close(db)

	user, err := auth.CreateUser(db, c.String("name"), c.String("email"), c.String("password"), models.RoleAdmin)
	if err != nil {
		return err
	}
	log.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("✅ Admin created")
	return nil
}
