// Package cli defines the cobra command tree for trip-planner.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/client"
	"github.com/evcraddock/trip-planner/internal/config"
	"github.com/evcraddock/trip-planner/internal/db"
	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/logging"
	"github.com/evcraddock/trip-planner/internal/planner"
)

var (
	flagFormat  string
	flagDB      string
	flagCatalog string
	flagConfig  string
	flagServer  string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tp",
		Short:         "Plan surprise trips on a budget",
		Long:          "Generate random day-by-day itineraries that fit a budget, then pick which stays and activities to book.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.trip-planner/trips.db)")
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog YAML file (default: built-in catalog)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/tp/config.yaml)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL to plan, book and manage saved itineraries on (default: local)")

	root.AddCommand(
		newDestinationsCmd(),
		newGenerateCmd(),
		newBookCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newRemoveCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// loadSettings reads the config file and environment, then applies flag overrides.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagCatalog != "" {
		cfg.CatalogPath = flagCatalog
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	return cfg, nil
}

// newLogger returns a logger for commands. Outside dev mode CLI commands stay quiet.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if !cfg.DevMode {
		return zap.NewNop(), nil
	}
	return logging.New(true)
}

// newPlanner loads the catalog and builds a planner service.
func newPlanner(cfg config.Config) (*planner.Service, error) {
	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	return planner.NewService(store, nil, logger), nil
}

// tripPlanner is what generate and book need. The local service and the API
// client both satisfy it.
type tripPlanner interface {
	Plan(req planner.Request) (*planner.Plan, error)
	Confirm(options []booking.Option, selection []int) (*booking.Confirmation, error)
}

// remotePlanner adapts the API client to tripPlanner.
type remotePlanner struct {
	c *client.Client
}

func (r remotePlanner) Plan(req planner.Request) (*planner.Plan, error) {
	resp, err := r.c.Plan(req, false, "")
	if err != nil {
		return nil, err
	}
	return &resp.Plan, nil
}

func (r remotePlanner) Confirm(options []booking.Option, selection []int) (*booking.Confirmation, error) {
	return r.c.Confirm(options, selection)
}

// newTripPlanner plans on the configured server, or locally when there is none.
func newTripPlanner(cfg config.Config) (tripPlanner, error) {
	if cfg.ServerURL != "" {
		return remotePlanner{c: client.New(cfg.ServerURL)}, nil
	}
	svc, err := newPlanner(cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// openDB opens the SQLite database from config or the default path.
func openDB(cfg config.Config) (*sql.DB, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// savedStore is what history, show and remove need. The local repository
// and the API client both satisfy it.
type savedStore interface {
	List() ([]*itinerary.Saved, error)
	GetByID(id int64) (*itinerary.Saved, error)
	Delete(id int64) error
}

// remoteSaved adapts the API client to savedStore.
type remoteSaved struct {
	c *client.Client
}

func (r remoteSaved) List() ([]*itinerary.Saved, error) { return r.c.ListSaved() }

func (r remoteSaved) GetByID(id int64) (*itinerary.Saved, error) { return r.c.GetSaved(id) }

func (r remoteSaved) Delete(id int64) error { return r.c.DeleteSaved(id) }

// newSavedStore returns the saved-itinerary store: the server when one is
// configured, otherwise the local database. The returned func releases it.
func newSavedStore() (savedStore, func(), error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	if cfg.ServerURL != "" {
		return remoteSaved{c: client.New(cfg.ServerURL)}, func() {}, nil
	}

	database, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return itinerary.NewRepository(database), func() { closeDB(database) }, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
