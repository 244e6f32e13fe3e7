package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/doctoc/internal/reader"
	"github.com/dgallion1/doctoc/internal/toc"
)

// JobRecorder receives one observation per finished job.
type JobRecorder interface {
	IncJobResult(status string)
}

// Worker processes a single document job.
type Worker struct {
	transformer *toc.Transformer
	readOpts    reader.Options
	rec         JobRecorder
	log         *slog.Logger
}

func NewWorker(tr *toc.Transformer, readOpts reader.Options, rec JobRecorder, log *slog.Logger) *Worker {
	return &Worker{
		transformer: tr,
		readOpts:    readOpts,
		rec:         rec,
		log:         log,
	}
}

// Process reads the uploaded file and runs the TOC transform on it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		w.fail(job, "queued", fmt.Sprintf("cancelled: %s", err))
		return
	}

	// Phase 1: Read
	job.SetStatus(StatusReading, "reading")
	doc, err := reader.ReadFile(bytes.NewReader(job.FileData()), job.Filename, w.readOpts)
	if err != nil {
		log.Error("read failed", "error", err)
		w.fail(job, "reading", err.Error())
		return
	}
	for k, v := range job.Overrides() {
		doc.SetMeta(k, v)
	}

	// Phase 2: Transform
	job.SetStatus(StatusTransforming, "transforming")
	res, err := w.transformer.Transform(doc)
	if err != nil {
		log.Error("transform failed", "error", err)
		w.fail(job, "transforming", err.Error())
		return
	}
	job.SetResult(doc, res)

	status := StatusCompleted
	if res.Outcome == toc.OutcomeSkipped {
		status = StatusSkipped
	}
	job.SetStatus(status, "done")
	log.Info("job finished", "status", status, "outcome", res.Outcome, "headings", res.Headings)
	w.record(status)
}

func (w *Worker) fail(job *Job, phase, msg string) {
	job.AddError(msg)
	job.SetStatus(StatusFailed, phase)
	w.record(StatusFailed)
}

func (w *Worker) record(status JobStatus) {
	if w.rec != nil {
		w.rec.IncJobResult(string(status))
	}
}
