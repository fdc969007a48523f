package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"auctionsim/internal/logging"
	"auctionsim/internal/sim"
	"auctionsim/internal/stream"
)

const defaultListenAddr = ":8080"

func main() {
	logger, err := logging.New(os.Getenv("DEBUG") == "true")
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	cfg := sim.LoadFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(cfg, logger)
	srv := stream.NewServer(logger)

	go srv.Consume(s.Events())
	go s.Run(ctx)

	logger.Info("stream server listening", zap.String("addr", listenAddr))
	if err := http.ListenAndServe(listenAddr, srv.Routes()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
