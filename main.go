package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/cobra"

	"assessku_backend/internals/configs"
	database "assessku_backend/internals/databases"
	scheduler "assessku_backend/internals/features/users/auth/scheduler"
	middlewares "assessku_backend/internals/middlewares"
	routes "assessku_backend/internals/route"
	"assessku_backend/internals/seeds"
)

const (
	Version = "0.1.0"
	appName = "assessku"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Assessku backend (assessment answer workflow)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		// tanpa subcommand → serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate semua tabel",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.ConnectDB()
			defer database.Close()
			return database.Migrate(database.DB)
		},
	})

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed admin + bank soal (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.ConnectDB()
			defer database.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			return seeds.RunAllSeeds(ctx, database.DB, seedFile)
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "File YAML bank soal (default SEED_FILE)")
	cmd.AddCommand(seedCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func serve() error {
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnv("AUTO_MIGRATE", "false") == "true" {
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
	}

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()
	scheduler.StartBlacklistCleanupScheduler(bgCtx, database.DB, time.Hour)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		errCh <- app.Listen("0.0.0.0:" + configs.Port)
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		database.Close()
		return err
	case <-quit:
	}

	stopBg()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
	log.Println("👋 Server stopped")
	return nil
}
