package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gamesearch/internal/cli"
)

// runMain executes the command line and returns the exit code
func runMain(ctx context.Context) int {
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	exitCode := runMain(ctx)
	cancel()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
