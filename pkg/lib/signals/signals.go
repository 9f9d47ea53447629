// Package signals gives cmd/bmc graceful-interrupt handling for a long
// `check invariant`/`check ltl` run: neither algorithm accepts a
// context to cancel a SAT solve mid-call, so a first SIGINT/SIGTERM
// only asks the CLI to report and exit once the current check returns;
// a second one exits immediately.
package signals

import (
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SetupSignalHandler returns a channel that closes on the first
// SIGINT/SIGTERM. A second signal terminates the process directly with
// exit code 1, so an operator can always force a stuck run down.
func SetupSignalHandler() (stopCh <-chan struct{}) {
	stop := make(chan struct{})
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	go func() {
		<-c
		close(stop)
		<-c
		os.Exit(1)
	}()
	return stop
}
