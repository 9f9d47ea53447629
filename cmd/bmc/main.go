package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/bmc-core/pkg/lib/profile"
	"github.com/operator-framework/bmc-core/pkg/lib/signals"
	"github.com/operator-framework/bmc-core/pkg/version"
)

var pprofAddr string

func main() {
	rootCmd := &cobra.Command{
		Use:   "bmc",
		Short: "bmc",
		Long:  `bmc runs bounded model checking against a small set of built-in example FSMs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if pprofAddr == "" {
				return nil
			}
			mux := http.NewServeMux()
			profile.RegisterHandlers(mux, profile.WithTLS(false))
			go func() {
				if err := http.ListenAndServe(pprofAddr, mux); err != nil {
					logrus.WithError(err).Error("pprof server exited")
				}
			}()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&pprofAddr, "pprof-addr", "", "if set, serve pprof debug handlers on this address")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())

	stop := signals.SetupSignalHandler()
	done := make(chan error, 1)
	go func() { done <- rootCmd.Execute() }()

	select {
	case err := <-done:
		if err != nil {
			logrus.Error(err)
			os.Exit(1)
		}
	case <-stop:
		logrus.Warn("received interrupt, waiting for the current check to finish (interrupt again to force-exit)")
		if err := <-done; err != nil {
			logrus.Error(err)
			os.Exit(1)
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the bmc version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(version.String()))
			return err
		},
	}
}
