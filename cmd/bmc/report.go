package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/config"
	"github.com/operator-framework/bmc-core/internal/trace"
)

// writeTrace renders tr the way internal/bddv.Valuation.Pretty already
// formats one frame, one line per state/input frame, to cfg.TracePath
// if set.
func writeTrace(cfg *config.Config, logger *logrus.Logger, tr *trace.Trace) error {
	if cfg.TracePath == "" || tr == nil {
		return nil
	}

	f, err := os.Create(cfg.TracePath)
	if err != nil {
		return fmt.Errorf("writing trace to %s: %w", cfg.TracePath, err)
	}
	defer f.Close()

	if err := printTrace(f, tr); err != nil {
		return err
	}
	logger.WithField("path", cfg.TracePath).Info("wrote witness trace")
	return nil
}

func printTrace(w io.Writer, tr *trace.Trace) error {
	for i, state := range tr.States {
		if _, err := fmt.Fprintf(w, "frame %d: %s\n", i, state.Pretty()); err != nil {
			return err
		}
		if i < len(tr.Inputs) {
			if _, err := fmt.Fprintf(w, "  input %d: %s\n", i, tr.Inputs[i].Pretty()); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDIMACS dumps c, annotated via resolver's comment table, to
// cfg.DIMACSPath if set. The algorithm entry points themselves return
// only the outcome, not the CNF problem they solved, so callers
// reconstruct an equivalent one-shot problem at the settled depth (see
// dimacsForInvariant and dimacsForLTL) purely for this dump.
func writeDIMACS(cfg *config.Config, logger *logrus.Logger, c *cnf.CNF, resolver cnf.NameResolver) error {
	if cfg.DIMACSPath == "" || c == nil {
		return nil
	}

	f, err := os.Create(cfg.DIMACSPath)
	if err != nil {
		return fmt.Errorf("writing dimacs to %s: %w", cfg.DIMACSPath, err)
	}
	defer f.Close()

	if err := cnf.WriteDIMACS(f, c, resolver); err != nil {
		return err
	}
	logger.WithField("path", cfg.DIMACSPath).Info("wrote dimacs dump")
	return nil
}
