package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"auctionsim/internal/logging"
	"auctionsim/internal/sim"
)

func main() {
	csvOut := flag.Bool("csv", false, "write the portfolio series as CSV to stdout")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := sim.LoadFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(cfg, logger)

	// nobody reads events in headless mode; drain them
	go func() {
		for range s.Events() {
		}
	}()

	result := s.Run(ctx)

	if result.Bankrupt {
		logger.Warn("run ended in bankruptcy", zap.Int("tick", result.BankruptTick))
	}

	if *csvOut {
		fmt.Println("tick,portfolio")
		for _, sample := range result.Samples {
			fmt.Printf("%d,%.6f\n", sample.Tick, sample.Value)
		}
	}
}
