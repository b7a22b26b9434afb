package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/portfolio-api/api"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/services"
	"github.com/rpupo63/portfolio-api/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "portfolio-api",
	Short:        "Portfolio content API",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(config.MustLoad())
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and indexes",
	RunE:  runMigrate,
}

var schemaReportCmd = &cobra.Command{
	Use:   "schema-report",
	Short: "List database columns that no model maps",
	RunE:  runSchemaReport,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token accepted by the write endpoints",
	RunE:  runToken,
}

func init() {
	schemaReportCmd.Flags().Bool("strict", false, "exit with an error when mismatches are found")
	tokenCmd.Flags().String("subject", "admin", "token subject")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(schemaReportCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "portfolio-api").Logger()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	log.Info().Str("driver", cfg.DBType).Msg("Connecting to database...")
	db, err := database.Open(ctx, database.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func openResumeStore(ctx context.Context, cfg *config.Config) (storage.ResumeStore, error) {
	if cfg.ResumeStorage == "s3" {
		log.Info().Str("bucket", cfg.ResumeS3Bucket).Str("prefix", cfg.ResumeS3Prefix).Msg("Using S3 resume storage")
		return storage.NewS3StoreFromEnv(ctx, cfg.ResumeS3Bucket, cfg.ResumeS3Prefix)
	}
	log.Info().Str("dir", cfg.ResumeDir).Msg("Using local resume storage")
	return storage.NewLocalStore(cfg.ResumeDir), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	ctx := cmd.Context()

	log.Info().Str("env", cfg.AppEnv).Msg("Initializing app...")

	if err := cfg.ResolveAPIKey(ctx, nil); err != nil {
		return fmt.Errorf("resolve API key: %w", err)
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	currentDB := database.New(db)
	defer func() {
		if err := currentDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	resumes, err := openResumeStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("resume storage: %w", err)
	}

	projects := services.NewProjectService(currentDB)
	skills := services.NewSkillService(currentDB)
	experiences := services.NewExperienceService(currentDB)
	profile := services.NewProfileService(currentDB)

	server, err := api.NewServer(cfg, currentDB, api.Services{
		Projects:    projects,
		Skills:      skills,
		Experiences: experiences,
		Profile:     profile,
		Portfolio:   services.NewPortfolioService(profile, projects, skills, experiences),
		Resume:      services.NewResumeService(resumes),
	})
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(cfg.ShutdownTimeout)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.New(db).Close() }()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("Migrations applied")
	return nil
}

func runSchemaReport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.New(db).Close() }()

	reports, err := database.ColumnMismatchReport(db)
	if err != nil {
		return fmt.Errorf("schema report: %w", err)
	}

	mismatches := database.WriteColumnMismatchReport(cmd.OutOrStdout(), reports)
	if strict, _ := cmd.Flags().GetBool("strict"); strict && mismatches > 0 {
		return fmt.Errorf("%d column mismatches found", mismatches)
	}
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if err := cfg.ResolveAPIKey(cmd.Context(), nil); err != nil {
		return fmt.Errorf("resolve API key: %w", err)
	}

	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := api.IssueToken(cfg.APIKey, subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
