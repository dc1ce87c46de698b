package main

import (
	"context"
	"crypto/ecdsa"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cppla/conduit/config"
	"github.com/cppla/conduit/routes"
	"github.com/cppla/conduit/utils"
)

var (
	skipMigrate bool

	rootCmd = &cobra.Command{
		Use:   "conduit",
		Short: "Social publishing backend: articles, tags, favorites, comments and follows",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger early
			return utils.InitLogger(config.Load())
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE:  runMigrate,
	}
)

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema before serving")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	defer func() { _ = utils.Logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.Logger.Error("database unavailable", zap.Error(err))
		return err
	}
	if !skipMigrate {
		if err := config.Migrate(db); err != nil {
			utils.Logger.Error("migration failed", zap.Error(err))
			return err
		}
	}

	key, err := signingKey(cfg)
	if err != nil {
		utils.Logger.Error("signing key unavailable", zap.Error(err))
		return err
	}
	tokens := utils.NewTokenProvider(key, cfg.JWTIssuer, cfg.JWTTTL)

	rc := utils.NewRedis(cfg)
	if rc != nil {
		defer rc.Close()
	}

	r := routes.SetupRouter(cfg, db, rc, tokens)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(context.Background(), ":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Errorf("server stopped with error: %v", err)
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := config.OpenDatabase(config.Load())
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	utils.Logger.Info("schema migrated")
	return nil
}

// signingKey loads the configured key, or generates one for this process when none is set.
// Tokens signed with a generated key do not survive a restart.
func signingKey(cfg config.AppConfig) (*ecdsa.PrivateKey, error) {
	if cfg.JWTPrivateKeyPath != "" {
		return utils.LoadSigningKey(cfg.JWTPrivateKeyPath)
	}
	utils.Logger.Warn("JWT_PRIVATE_KEY_PATH not set; generated an ephemeral signing key")
	return utils.GenerateSigningKey()
}
