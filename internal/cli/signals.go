package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// holdInterrupts keeps the launcher alive on Ctrl+C while the child runs.
// The console delivers the interrupt to the child too, and the launcher
// exits once the child has. The returned function releases the handler.
func holdInterrupts(logger *slog.Logger) func() {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				logger.Info("received signal, waiting for the application to exit", "signal", sig.String())
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
