package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/flashprobe/internal/stub"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory stub flashcard service",
		Args:  cobra.NoArgs,
		RunE:  serveE,
	}

	addLoggingFlags(serveCmd.Flags())
	serveCmd.Flags().String("listen", ":5002", "Listen address")
	serveCmd.Flags().String("token", "", "Bearer token required on authenticated routes (empty accepts any)")

	return serveCmd
}

func serveE(cmd *cobra.Command, args []string) error {
	listen, _ := cmd.Flags().GetString("listen")
	token, _ := cmd.Flags().GetString("token")

	logger := loggerFromCmd(cmd)

	h := stub.NewHandler(stub.NewStore(), token)
	srv := &http.Server{
		Addr:              listen,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub listening", "addr", listen, "seedSetId", h.Store().SeedSetID())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", "err", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("stub stopped")
	return nil
}
