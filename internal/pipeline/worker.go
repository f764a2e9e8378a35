package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/gedgest/gedgest/internal/config"
	"github.com/gedgest/gedgest/internal/gedcom"
	"github.com/gedgest/gedgest/internal/gentree"
	"github.com/gedgest/gedgest/internal/parser"
)

// Worker runs the conversion pipeline for one job at a time:
// parse the upload into lines, build the tree, encode GEDCOM.
type Worker struct {
	log   *slog.Logger
	cfg   config.Config
	stats *ConvertStats
}

func NewWorker(log *slog.Logger, cfg config.Config, stats *ConvertStats) *Worker {
	return &Worker{log: log, cfg: cfg, stats: stats}
}

// Process runs the full conversion for a job. All recoverable input
// problems end up in the job's anomaly list; only unreadable input fails
// the job.
func (w *Worker) Process(job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	started := time.Now()

	// Phase 1: parse the upload into the line stream.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.cfg.PDFFallbackPdftotext
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title == "" {
		job.Title = doc.Title
	}
	job.SetTotalLines(len(doc.Lines))
	log.Info("parsed transcription", "lines", len(doc.Lines))

	// Phase 2: reconstruct the tree from the numbering sequence.
	job.SetStatus(StatusBuilding, "building")
	builder := gentree.NewBuilder(log)
	for _, line := range doc.Lines {
		builder.Feed(line)
	}
	tree := builder.Finalize()
	job.SetCounts(len(tree.Individuals), len(tree.Unions))
	job.SetAnomalies(builder.Anomalies())
	log.Info("built tree",
		"individuals", len(tree.Individuals),
		"unions", len(tree.Unions),
		"anomalies", len(builder.Anomalies()),
	)

	if len(tree.Individuals) == 0 {
		log.Warn("no individuals detected")
		job.AddError("no individuals detected in input")
		job.SetStatus(StatusFailed, "building")
		return
	}

	// Phase 3: render the document.
	job.SetStatus(StatusEncoding, "encoding")
	out := gedcom.Serialize(tree, gedcom.Options{
		Source:    w.cfg.GedcomSource,
		Submitter: w.cfg.GedcomSubmitter,
	})
	job.SetResult([]byte(out))
	job.SetStatus(StatusCompleted, "done")

	w.stats.Record(time.Since(started).Milliseconds())
	log.Info("conversion complete", "bytes", len(out), "duration_ms", time.Since(started).Milliseconds())
}
