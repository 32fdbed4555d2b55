package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/chemjson"
	"github.com/rmera/gofill/chemplot"
	"github.com/rmera/gofill/clash"
	"github.com/rmera/gofill/fill"
	"github.com/rmera/gofill/internal/config"
	"github.com/rmera/gofill/internal/metrics"
	"github.com/rmera/gofill/solv"
	"github.com/rs/zerolog"
)

//bins of the attempts histogram.
const plotBins = 20

//options translates the configuration into fill options.
func options(cfg config.Config, log zerolog.Logger) *fill.Options {
	opts := fill.DefaultOptions()
	opts.Logger(log)
	opts.Seed(cfg.Seed)
	opts.Reorient(cfg.Reorient)
	opts.Retries(cfg.Retries)
	if cfg.Orienter == config.OrienterQuaternion {
		opts.Orienter(fill.UniformQuaternion{})
	}
	if cfg.Checker == config.CheckerGrid {
		opts.Checker(&clash.Grid{})
	}
	return opts
}

//runFill produces the filled structures cfg asks for, writes them and, if
//requested, the metrics and plots. A summary per structure goes to out.
//A fill that doesn't place every molecule requested is not an error.
func runFill(cfg config.Config, out io.Writer, log zerolog.Logger) error {
	host, err := chem.FileRead(cfg.Adsorbent)
	if err != nil {
		return fmt.Errorf("reading adsorbent: %w", err)
	}
	F, err := fill.NewFromSpec(host, cfg.Adsorbate, cfg.Tolerance, options(cfg, log))
	if err != nil {
		return err
	}
	run := uuid.New()
	log.Info().Str("run", run.String()).Str("adsorbate", F.Formula()).Str("adsorbent", cfg.Adsorbent).
		Uint64("seed", F.Seed()).Msg("starting")
	//the summary can't share stdout with a JSON stream
	summary := out
	if cfg.JSON == "-" {
		summary = os.Stderr
	}
	rec := metrics.New()
	mols := make([]*chem.Molecule, 0, cfg.Structures)
	comments := make([]string, 0, cfg.Structures)
	series := make([]chemplot.Series, 0, cfg.Structures)
	results := make([]*fill.Result, 0, cfg.Structures)
	for i := 0; i < cfg.Structures; i++ {
		start := time.Now()
		res, err := F.Fill(cfg.N, cfg.MaxIter, cfg.Verbose)
		if err != nil {
			return fmt.Errorf("structure %d: %w", i, err)
		}
		rec.Record(i, res, time.Since(start))
		results = append(results, res)
		mols = append(mols, res.Mol)
		comments = append(comments, fmt.Sprintf("run=%s structure=%d %s", run, i, res))
		series = append(series, chemplot.Series{Label: fmt.Sprintf("structure %d", i), Attempts: res.Attempts})
		fmt.Fprintf(summary, "structure %d: placed %d %s molecules in %d attempts", i, res.Placed, res.Formula, res.TotalAttempts())
		if res.Saturated {
			fmt.Fprint(summary, " (saturated)")
		}
		fmt.Fprintln(summary)
		if res.Requested > 0 && !res.Complete() {
			log.Warn().Int("structure", i).Int("placed", res.Placed).Int("requested", res.Requested).Msg("partial fill")
		}
	}
	if err := chem.FileWrite(cfg.Output, mols, comments); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	log.Info().Str("output", cfg.Output).Int("structures", len(mols)).Msg("written")
	if cfg.Metrics != "" {
		if err := rec.WriteToTextfile(cfg.Metrics); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	if cfg.JSON != "" {
		if err := writeJSON(cfg.JSON, out, run.String(), results); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
	}
	if cfg.RDF != "" {
		if err := writeRDF(cfg.RDF, results, cfg.RDFRef); err != nil {
			return fmt.Errorf("rdf: %w", err)
		}
	}
	title := fmt.Sprintf("%s in %s", F.Formula(), cfg.Adsorbent)
	if cfg.Plot != "" {
		if err := chemplot.AttemptsHistogram(series, cfg.MaxIter, plotBins, title, cfg.Plot); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
	}
	if cfg.Curve != "" {
		if err := chemplot.SaturationCurve(series, cfg.MaxIter, title, cfg.Curve); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
	}
	return nil
}

//writeJSON streams the results to the file name, or to stdout if name is "-".
func writeJSON(name string, stdout io.Writer, run string, results []*fill.Result) error {
	if name == "-" {
		return sendResults(stdout, run, results)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := sendResults(f, run, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sendResults(out io.Writer, run string, results []*fill.Result) error {
	w := bufio.NewWriter(out)
	for i, res := range results {
		if err := chemjson.SendResult(res, run, i, w); err != nil {
			return err
		}
	}
	return w.Flush()
}

//writeRDF writes, as columns, the distance, the RDF of the placed molecules around the host atoms with
//the symbols refs (all host atoms if none) and the mean number of molecules within that distance.
func writeRDF(name string, results []*fill.Result, refs []string) error {
	o := solv.DefaultOptions()
	rdf, n, err := solv.MolRDF(results, solv.RefIndexes(results[0], refs...), o)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s, %d structures\n# r(A)  g(r)  n(r)\n", results[0].Formula, len(results))
	for i := range rdf {
		fmt.Fprintf(w, "%8.3f %12.6f %10.4f\n", float64(i+1)*o.Step(), rdf[i], n[i])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
