package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-bandar-screener/internal/screener/config"
	delivery "golang-bandar-screener/internal/screener/delivery/http"
	_ "golang-bandar-screener/internal/screener/docs"
	"golang-bandar-screener/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var (
	configPath string
	outPath    string
	notify     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the screener HTTP service and the scheduled runs",
	Run:   runServe,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one screening and prints the HTML result",
	Run:   runOnce,
}

func loadConfigAndLogger() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Screener Service", logger.Field("name", cfg.App.Name))

	a, err := buildApp(ctx, cfg, appLogger, cfg.Telegram.Enabled)
	if err != nil {
		appLogger.Fatal("Failed to initialize screener", logger.ErrorField(err))
	}
	defer a.Close()

	a.runner.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()

	// Initialize handlers and routes
	delivery.RegisterHealthRoute(e)

	chatHandler := delivery.NewChatHandler(a.chat, appLogger)
	chatHandler.RegisterRoutes(e.Group("/chat"))

	apiV1 := e.Group("/api/v1")
	screeningHandler := delivery.NewScreeningHandler(a.screening, appLogger)
	screeningHandler.RegisterRoutes(apiV1.Group("/screenings"))
	chatHandler.RegisterRulesRoutes(apiV1.Group("/rules"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")
	a.runner.Stop()

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	a, err := buildApp(ctx, cfg, appLogger, notify)
	if err != nil {
		appLogger.Fatal("Failed to initialize screener", logger.ErrorField(err))
	}
	defer a.Close()

	result, err := a.runner.RunOnce(ctx)
	if err != nil {
		appLogger.Error("Screening run failed", logger.ErrorField(err))
		a.Close()
		os.Exit(1)
	}

	if outPath == "" {
		fmt.Println(result.HTML)
		return
	}
	if err := os.WriteFile(outPath, []byte(result.HTML), 0o644); err != nil {
		appLogger.Fatal("Failed to write result", logger.ErrorField(err), logger.StringField("path", outPath))
	}
	appLogger.Info("Screening result written", logger.StringField("path", outPath), logger.StringField("run_id", result.RunID))
}

// @title Bandar Screener API
// @version 1.0
// @description Bandarmology stock screening with AI recommendations.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "screener-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the HTML result to this file instead of stdout")
	runCmd.Flags().BoolVar(&notify, "notify", false, "Send the result to Telegram")

	rootCmd.AddCommand(serveCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing screener-service CLI: %s\n", err)
		os.Exit(1)
	}
}
