package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rmera/gofill/internal/config"
	"github.com/rmera/gofill/molecules"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

//newLogger returns a console logger on stderr with the given level.
func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger(), nil
}

//buildRootCmd constructs the command tree. Normal output goes to out.
func buildRootCmd(out io.Writer) *cobra.Command {
	var logLevel string
	log := zerolog.Nop()
	root := &cobra.Command{
		Use:           "fillmof",
		Short:         "Pack random copies of a molecule into a periodic structure",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(logLevel)
		if err != nil {
			return err
		}
		log = l
		return nil
	}

	flags := config.Default()
	var cfgPath string
	fillCmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the cell of the adsorbent with copies of the adsorbate",
		Example: "  fillmof fill --adsorbate H2O --adsorbent mof.xyz -n 5 --tol 2.0 -o out.xyz\n" +
			"  fillmof fill --config run.toml --structures 10 --metrics fill.prom",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mergeConfig(cmd, cfgPath, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" && cfg.LogLevel != logLevel {
				if log, err = newLogger(cfg.LogLevel); err != nil {
					return err
				}
			}
			return runFill(cfg, cmd.OutOrStdout(), log)
		},
	}
	f := fillCmd.Flags()
	f.StringVar(&cfgPath, "config", "", "Configuration file (.toml, .yaml, .yml or .json); flags override its values")
	f.StringVar(&flags.Adsorbate, "adsorbate", flags.Adsorbate, "Structure file or chemical formula of the molecule to fill in")
	f.StringVar(&flags.Adsorbent, "adsorbent", flags.Adsorbent, "Periodic structure file to fill")
	f.IntVarP(&flags.N, "n", "n", flags.N, "Molecules to place per structure, 0 fills until saturation")
	f.IntVar(&flags.Structures, "structures", flags.Structures, "Independent filled structures to produce")
	f.Float64Var(&flags.Tolerance, "tol", flags.Tolerance, "Minimum distance (A) between an adsorbate atom and any other atom")
	f.IntVar(&flags.MaxIter, "maxiter", flags.MaxIter, "Attempts allowed per molecule")
	f.StringVarP(&flags.Output, "output", "o", flags.Output, "Output file (.xyz, .extxyz or .pdb, optionally .gz or .zst)")
	f.Uint64Var(&flags.Seed, "seed", flags.Seed, "Random seed, 0 takes one from the clock")
	f.StringVar(&flags.Orienter, "orienter", flags.Orienter, "Orientation sampler: two-normals|quaternion")
	f.StringVar(&flags.Checker, "checker", flags.Checker, "Distance checker: brute|grid")
	f.IntVar(&flags.Retries, "retries", flags.Retries, "Molecules beyond the first allowed to fail before a fill stops")
	f.IntVar(&flags.Reorient, "reorient", flags.Reorient, "Rejections after which a new orientation is drawn")
	f.StringVar(&flags.Metrics, "metrics", flags.Metrics, "Write Prometheus metrics of the run to this textfile")
	f.StringVar(&flags.Plot, "plot", flags.Plot, "Write a histogram of the attempts per molecule to this image")
	f.StringVar(&flags.Curve, "curve", flags.Curve, "Write the attempts needed for each successive molecule to this image")
	f.StringVar(&flags.JSON, "json", flags.JSON, "Stream the filled structures as line-delimited JSON to this file, - for stdout")
	f.StringVar(&flags.RDF, "rdf", flags.RDF, "Write the radial distribution of the placed molecules around host atoms to this file")
	f.StringSliceVar(&flags.RDFRef, "rdf-ref", flags.RDFRef, "Symbols of the host atoms used as reference for --rdf (default all)")
	f.BoolVarP(&flags.Verbose, "verbose", "v", flags.Verbose, "Log every molecule placed")

	molCmd := &cobra.Command{
		Use:   "molecules",
		Short: "List the molecules that can be given by formula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range molecules.Known() {
				fmt.Fprintf(w, "%s\t%s\n", k, molecules.Description(k))
			}
			return w.Flush()
		},
	}
	root.AddCommand(fillCmd, molCmd)
	return root
}

//mergeConfig reads the configuration file, if given, and puts on top of it the
//flags explicitly set. The result is checked.
func mergeConfig(cmd *cobra.Command, path string, flags config.Config) (config.Config, error) {
	if path == "" {
		return flags, flags.Check()
	}
	cfg, err := config.Decode(path)
	if err != nil {
		return cfg, err
	}
	set := map[string]func(){
		"adsorbate":  func() { cfg.Adsorbate = flags.Adsorbate },
		"adsorbent":  func() { cfg.Adsorbent = flags.Adsorbent },
		"n":          func() { cfg.N = flags.N },
		"structures": func() { cfg.Structures = flags.Structures },
		"tol":        func() { cfg.Tolerance = flags.Tolerance },
		"maxiter":    func() { cfg.MaxIter = flags.MaxIter },
		"output":     func() { cfg.Output = flags.Output },
		"seed":       func() { cfg.Seed = flags.Seed },
		"orienter":   func() { cfg.Orienter = flags.Orienter },
		"checker":    func() { cfg.Checker = flags.Checker },
		"retries":    func() { cfg.Retries = flags.Retries },
		"reorient":   func() { cfg.Reorient = flags.Reorient },
		"metrics":    func() { cfg.Metrics = flags.Metrics },
		"plot":       func() { cfg.Plot = flags.Plot },
		"curve":      func() { cfg.Curve = flags.Curve },
		"json":       func() { cfg.JSON = flags.JSON },
		"rdf":        func() { cfg.RDF = flags.RDF },
		"rdf-ref":    func() { cfg.RDFRef = flags.RDFRef },
		"verbose":    func() { cfg.Verbose = flags.Verbose },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	if err := cfg.Check(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
