package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gedgest/gedgest/internal/gedcom"
	"github.com/gedgest/gedgest/internal/gentree"
	"github.com/gedgest/gedgest/internal/parser"
)

type convertOptions struct {
	output         string
	source         string
	submitter      string
	pdfFallback    bool
	strictWarnings bool
	showStats      bool
	verbose        bool
}

func newConvertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert one transcription file to GEDCOM",
		Long: `Convert reads a transcription of an NGSQ-numbered genealogy report
(Textract layout CSV, plain text, Markdown, HTML/hOCR, PDF, or DOCX) and
writes the reconstructed family tree as GEDCOM 5.5.1. Anomalies found while
interpreting the numbering are reported on stderr for manual review.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.source, "source", "gedgest", "GEDCOM header SOUR value")
	cmd.Flags().StringVar(&opts.submitter, "submitter", "", "GEDCOM submitter name (default: source)")
	cmd.Flags().BoolVar(&opts.pdfFallback, "pdftotext-fallback", true, "fall back to pdftotext for PDFs")
	cmd.Flags().BoolVar(&opts.strictWarnings, "strict-warnings", false, "exit nonzero when anomalies were found")
	cmd.Flags().BoolVar(&opts.showStats, "stats", false, "print tree counts to stderr")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func runConvert(path string, opts convertOptions) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	p, err := parser.ForFile(path)
	if err != nil {
		return err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = opts.pdfFallback
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	builder := gentree.NewBuilder(log)
	for _, line := range doc.Lines {
		builder.Feed(line)
	}
	tree := builder.Finalize()
	anomalies := builder.Anomalies()

	if len(tree.Individuals) == 0 {
		return fmt.Errorf("no individuals detected in %s", path)
	}

	out := gedcom.Serialize(tree, gedcom.Options{
		Source:    opts.source,
		Submitter: opts.submitter,
	})

	if opts.output == "" {
		fmt.Print(out)
	} else if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	for _, a := range anomalies {
		fmt.Fprintln(os.Stderr, "warning:", a.String())
	}
	if opts.showStats {
		fmt.Fprintf(os.Stderr, "individuals=%d unions=%d roots=%d anomalies=%d\n",
			len(tree.Individuals), len(tree.Unions), len(tree.Roots), len(anomalies))
	}
	if opts.strictWarnings && len(anomalies) > 0 {
		return fmt.Errorf("%d anomalies found", len(anomalies))
	}
	return nil
}
