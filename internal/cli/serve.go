package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/logging"
	"github.com/evcraddock/trip-planner/internal/planner"
	"github.com/evcraddock/trip-planner/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start an HTTP server exposing the catalog, itinerary planning, booking confirmation and saved itineraries as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = 0
			}
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides config)")

	return cmd
}

func runServe(port int) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Port = port
	}

	logger, err := logging.New(cfg.DevMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	svc := planner.NewService(store, nil, logger)
	srv := web.NewServer(svc, itinerary.NewRepository(database), logger, web.Options{
		AllowedOrigins:    cfg.AllowedOrigins,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})

	logger.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.Int("destinations", len(store.Destinations())),
		zap.Bool("dev", cfg.DevMode),
	)
	return srv.ListenAndServe(cfg.Port)
}
