package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/mathpractice/internal/api"
	"github.com/abhisek/mathpractice/internal/llm"
	"github.com/abhisek/mathpractice/internal/logging"
	"github.com/abhisek/mathpractice/internal/practice"
	"github.com/abhisek/mathpractice/internal/problemgen"
	"github.com/abhisek/mathpractice/internal/store"
	"github.com/abhisek/mathpractice/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and web client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := cfg.ValidateLLM(); err != nil {
			return fmt.Errorf("LLM provider not configured: %w (set MATHPRACTICE_LLM_PROVIDER=offline to try the app without a key)", err)
		}

		logger, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		dsn, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.OpenContext(ctx, dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()
		logger.Info("database ready", zap.String("dialect", st.Dialect()))

		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			return fmt.Errorf("create LLM provider: %w", err)
		}
		logger.Info("llm provider ready",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", provider.Model()),
		)

		gen := problemgen.New(provider, problemgen.DefaultConfig())
		svc := practice.NewService(gen, st.ProblemRepo(), logger)

		router := api.NewRouter(api.RouterOptions{
			Handler:        api.NewHandler(svc, logger),
			Logger:         logger,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Static:         web.SPAHandler(),
		})

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			// Generation and feedback wait on the model.
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}
		stop()

		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MATHPRACTICE_ADDR)")
}
