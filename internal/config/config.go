// Package config declares the BMC core's typed, flag-bound run
// configuration (A2): the search bound, which algorithm to run, the
// incremental-solver toggle, trace/DIMACS dump paths, and log level.
// Grounded on the teacher's cmd/olm flat pflag-var style, adapted to a
// single struct bound via pflag.FlagSet so it composes under a cobra
// command tree the way cmd/operator-cli's subcommands bind their own
// flags directly onto cmd.Flags().
package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/operator-framework/bmc-core/internal/bmcerr"
)

// Algorithm names one of §4.6's four invariant algorithms.
type Algorithm string

const (
	Classic      Algorithm = "classic"
	EenSorensson Algorithm = "een-sorensson"
	ZigZag       Algorithm = "zigzag"
	Dual         Algorithm = "dual"
)

func (a Algorithm) String() string { return string(a) }

// Incremental reports whether a is one of the two incremental
// algorithms (ZigZag, Dual), the ones that need an sat.IncSolver rather
// than a plain sat.Solver.
func (a Algorithm) Incremental() bool {
	return a == ZigZag || a == Dual
}

// Config is the full set of knobs a `bmc check` invocation exposes.
type Config struct {
	MinK int
	MaxK int

	Algorithm      Algorithm
	LTLIncremental bool // selects ltlcheck.Incremental over ltlcheck.NonIncremental
	AllLoops       bool // LTL loop hypothesis: search every admissible back-loop position

	TracePath  string // if non-empty, a witness trace is written here
	DIMACSPath string // if non-empty, the generated CNF problem is dumped here

	LogLevel string
}

// Default returns the configuration a bare `bmc check` invocation runs
// with before flags are parsed.
func Default() *Config {
	return &Config{
		MinK:           0,
		MaxK:           10,
		Algorithm:      ZigZag,
		LTLIncremental: true,
		AllLoops:       true,
		LogLevel:       "info",
	}
}

// AddFlags registers c's fields onto flags, following the teacher's
// StringVarP/IntVar/BoolVar binding style (cmd/operator-cli/bundle's
// bundleBuildCmd.Flags().StringVarP(&dirBuildArgs, ...)) generalized
// from package-level vars to a struct's fields.
func (c *Config) AddFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.MinK, "min-k", c.MinK, "minimum unrolling depth to start the search from")
	flags.IntVar(&c.MaxK, "max-k", c.MaxK, "maximum unrolling depth to search before giving up")
	flags.StringVar((*string)(&c.Algorithm), "algorithm", string(c.Algorithm),
		"invariant algorithm: classic, een-sorensson, zigzag, dual")
	flags.BoolVar(&c.LTLIncremental, "ltl-incremental", c.LTLIncremental,
		"use the incremental LTL algorithm instead of rebuilding per depth")
	flags.BoolVar(&c.AllLoops, "all-loops", c.AllLoops,
		"search every admissible loop position instead of only non-looping paths")
	flags.StringVar(&c.TracePath, "trace-out", c.TracePath, "file to write a falsifying witness trace to")
	flags.StringVar(&c.DIMACSPath, "dimacs-out", c.DIMACSPath, "file to dump the generated CNF problem to, in DIMACS format")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "logrus level: trace, debug, info, warn, error")
}

// Validate rejects configurations no algorithm can act on, following
// §7's InvalidProperty/ParameterInconsistent error kinds.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case Classic, EenSorensson, ZigZag, Dual:
	default:
		return bmcerr.New(bmcerr.InvalidProperty, "unrecognised algorithm %q", c.Algorithm)
	}
	if c.MaxK < c.MinK {
		return bmcerr.New(bmcerr.ParameterInconsistent, "max-k=%d is below min-k=%d", c.MaxK, c.MinK)
	}
	if c.MinK < 0 {
		return bmcerr.New(bmcerr.ParameterInconsistent, "min-k=%d must be non-negative", c.MinK)
	}
	return nil
}

// LogrusLevel parses LogLevel, surfacing an unrecognised level the same
// way an unrecognised algorithm is surfaced.
func (c *Config) LogrusLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, bmcerr.Wrap(bmcerr.InvalidProperty, err, "parsing log level %q", c.LogLevel)
	}
	return lvl, nil
}
