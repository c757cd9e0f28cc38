// Package cli implements the ffb command-line interface, the local consumer
// of the fleet data layer.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgufindo/ffb-swt/internal/api"
	"github.com/mgufindo/ffb-swt/internal/database"
	"github.com/mgufindo/ffb-swt/internal/logger"
	"github.com/mgufindo/ffb-swt/internal/storage"
	"github.com/mgufindo/ffb-swt/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

var flags rootFlags

// manager and client are initialized by PersistentPreRunE and torn down by
// PersistentPostRunE, so every subcommand runs against an open database.
var (
	manager *database.Manager
	client  *api.Client
)

// NewRootCmd creates the top-level "ffb" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ffb",
		Short: "Fleet management for palm oil FFB logistics",
		Long: "ffb manages the drivers, vehicles, mills, trips and fresh fruit bunch\n" +
			"collections of a palm oil transport fleet, persisted as a single\n" +
			"portable database blob.",
		SilenceUsage:       true,
		PersistentPreRunE:  openDatabase,
		PersistentPostRunE: closeDatabase,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .ffb)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .ffb-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newSaveCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newProduceCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// openDatabase loads configuration and initializes the data layer. The
// version command runs without it.
func openDatabase(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir := resolveConfigDir()
	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir := resolveDataDir(cfg)
	logger.Setup(filepath.Join(dataDir, "logs"))

	store := storage.NewFileStore(filepath.Join(dataDir, "store.json"))
	manager = database.NewManager(store, types.Config{DataDir: dataDir})
	db, err := manager.Initialize()
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	client = api.New(db, logger.L())
	return nil
}

// closeDatabase persists and releases the data layer.
func closeDatabase(cmd *cobra.Command, args []string) error {
	if manager == nil {
		return nil
	}
	return manager.Close()
}
