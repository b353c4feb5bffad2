package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/handlers/dto"
	"github.com/rafabene/ladino-web/internal/infrastructure/config"
	"github.com/rafabene/ladino-web/internal/infrastructure/logging"
	"github.com/rafabene/ladino-web/internal/infrastructure/persistence/sqlstore"
	"github.com/rafabene/ladino-web/internal/infrastructure/security"
	"github.com/rafabene/ladino-web/internal/infrastructure/session"
	"github.com/rafabene/ladino-web/internal/services"
)

var (
	cfg    *config.Config
	logger ports.Logger
	db     *gorm.DB

	userService     *services.UserService
	analysisService *services.AnalysisService

	listPage int
	listJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "ladino-admin",
	Short: "Administrative tasks for the Ladino web site",
	Long:  `Runs database migrations and deactivates users or analyses without a browser session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db == nil {
			return
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	},
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
		return printVersion(ctx, cmd)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.Context(), cmd)
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := userService.List(cmd.Context(), repositories.UserFilters{Page: listPage, PageSize: 100})
		if err != nil {
			return err
		}

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.ToUserResponses(users))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tEMAIL")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
		return w.Flush()
	},
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := userService.SoftDelete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d deactivated\n", id)
		return nil
	},
}

var userReactivateCmd = &cobra.Command{
	Use:   "reactivate <id>",
	Short: "Reactivate a deactivated user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := userService.Reactivate(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d active\n", id)
		return nil
	},
}

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage analyses",
}

var analysisDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate an analysis regardless of its owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := analysisService.Deactivate(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "analysis %d deactivated\n", id)
		return nil
	},
}

func init() {
	userListCmd.Flags().IntVar(&listPage, "page", 1, "Page to list (100 users per page)")
	userListCmd.Flags().BoolVar(&listJSON, "json", false, "Print the page as JSON")

	migrateCmd.AddCommand(migrateVersionCmd)
	userCmd.AddCommand(userListCmd, userDeactivateCmd, userReactivateCmd)
	analysisCmd.AddCommand(analysisDeactivateCmd)
	rootCmd.AddCommand(migrateCmd, userCmd, analysisCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func setupDependencies() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logger = logging.NewSlogLoggerTo(os.Stderr, cfg.Logging.Level)

	db, err = sqlstore.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	hasher, err := security.NewPasswordHasher(cfg.Security.PasswordHasher, cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	uow := sqlstore.NewUnitOfWork(db)
	userService = services.NewUserService(sqlstore.NewUserRepository(db), uow, hasher, session.NewStore(cfg.Session.TTL), logger)
	analysisService = services.NewAnalysisService(sqlstore.NewAnalysisRepository(db), uow, logger)
	return nil
}

func printVersion(ctx context.Context, cmd *cobra.Command) error {
	version, err := sqlstore.MigrationVersion(ctx, db, cfg.Database.Driver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migration version: %d\n", version)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
