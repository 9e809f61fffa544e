package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"trophyseeker/internal/adapters"
	"trophyseeker/internal/bootstrap"
	"trophyseeker/internal/delivery"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/repository"
	guidanceUC "trophyseeker/internal/usecase/guidance"
)

const (
	healthProbeInterval = 15 * time.Second
	shutdownTimeout     = 10 * time.Second
	cliUsername         = "cli"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envPath string

	root := &cobra.Command{
		Use:          "trophyseeker",
		Short:        "Trophy hunting companion service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envPath, "env", ".env", "path to an optional env file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and the gRPC health service",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), envPath)
			},
		},
		&cobra.Command{
			Use:   "chat",
			Short: "Chat with the trophy assistant in the terminal",
			RunE: func(cmd *cobra.Command, args []string) error {
				return chat(cmd.Context(), envPath)
			},
		},
	)
	return root
}

func serve(parent context.Context, envPath string) error {
	cfg, err := bootstrap.Setup(envPath)
	if err != nil {
		return fmt.Errorf("setup configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.LogDevelopment)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	go handleShutdown(cancel, logger)

	store, closeStore, err := repository.OpenKeyValueStore(ctx, cfg, logger)
	if err != nil {
		logger.Errorw("Failed to open storage", "driver", cfg.StorageDriver, "error", err)
		return err
	}
	defer closeStore(context.Background())

	deps := delivery.Dependencies{Store: store}
	gemini := adapters.NewAdapterGemini(cfg)
	if err := gemini.Init(ctx); err != nil {
		logger.Warnw("AI guidance disabled", "error", err)
	} else {
		defer gemini.Close()
		deps.Generator = repository.NewLlmRepository(gemini, logger)
	}

	handlers := delivery.InitializeDeliveryHandlers(*cfg, logger, deps)
	r := chi.NewRouter()
	handlers.Router(r, cfg.IsLocalCors)

	grpcServer := grpc.NewServer()
	handlers.Health.Register(grpcServer)
	go handlers.Health.Run(ctx, healthProbeInterval)

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		logger.Infof("gRPC health service is running on port %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Errorw("gRPC server stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("Failed to start server", "error", err)
			grpcServer.Stop()
			return err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	handlers.Health.Shutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("HTTP shutdown", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("Server stopped")
	return nil
}

// chat is a console client: every line is sent to the assistant and the
// answer is streamed back. Ctrl+C aborts the answer in progress.
func chat(parent context.Context, envPath string) error {
	cfg, err := bootstrap.Setup(envPath)
	if err != nil {
		return fmt.Errorf("setup configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.LogDevelopment)
	defer logger.Sync()

	gemini := adapters.NewAdapterGemini(cfg)
	if err := gemini.Init(parent); err != nil {
		return err
	}
	defer gemini.Close()

	uc := guidanceUC.NewGuidanceUsecase(repository.NewLlmRepository(gemini, logger), guidanceUC.NewTracker(), logger)

	fmt.Println("Ask anything about PlayStation trophies. Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			break
		}
		if input == "" {
			continue
		}

		ctx, stop := signal.NotifyContext(parent, os.Interrupt)
		fmt.Println("--------------------------------------------------")
		err := uc.Chat(ctx, cliUsername, "", input, func(chunk string) error {
			_, err := fmt.Print(chunk)
			return err
		})
		stop()
		fmt.Println()
		switch {
		case errors.Is(err, errs.ErrCanceled):
			fmt.Println("[answer canceled]")
		case err != nil:
			fmt.Printf("Error: %v\n", err)
		}
		fmt.Println("--------------------------------------------------")
	}
	return scanner.Err()
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
