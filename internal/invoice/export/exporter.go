// Package export runs PDF exports in the background.
//
// A job captures the laid out document when it starts, so edits made to the draft
// afterwards never reach the file. Jobs are not retried, cancelled or serialized
// against each other.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/smallbiznis/fatura/internal/clock"
	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/idgen"
	"github.com/smallbiznis/fatura/internal/invoice/render"
	"github.com/smallbiznis/fatura/internal/observability/metrics"
	"github.com/smallbiznis/fatura/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("invoice.export",
	fx.Provide(NewExporter),
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result describes a written file.
type Result struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

// View is a point-in-time copy of a job's state.
type View struct {
	ID         string     `json:"id"`
	FileName   string     `json:"fileName"`
	Status     Status     `json:"status"`
	Path       string     `json:"path,omitempty"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Job is one export in flight or finished.
type Job struct {
	ID        string
	FileName  string
	StartedAt time.Time

	done chan struct{}

	mu         sync.RWMutex
	status     Status
	result     Result
	err        error
	finishedAt time.Time
}

// Done is closed once the job has finished, successfully or not.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job finishes.
func (j *Job) Wait() (Result, error) {
	<-j.done
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result, j.err
}

func (j *Job) View() View {
	j.mu.RLock()
	defer j.mu.RUnlock()
	v := View{
		ID:        j.ID,
		FileName:  j.FileName,
		Status:    j.status,
		Path:      j.result.Path,
		StartedAt: j.StartedAt,
	}
	if j.err != nil {
		v.Error = j.err.Error()
	}
	if !j.finishedAt.IsZero() {
		t := j.finishedAt
		v.FinishedAt = &t
	}
	return v
}

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Clock    clock.Clock
	IDs      idgen.Generator
	Provider pdf.Provider
	Metrics  *metrics.ExportMetrics `optional:"true"`
}

type Exporter struct {
	dir      string
	log      *zap.Logger
	clock    clock.Clock
	ids      idgen.Generator
	provider pdf.Provider
	metrics  *metrics.ExportMetrics

	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewExporter(p Params) *Exporter {
	dir := p.Config.ExportDir
	if dir == "" {
		dir = "."
	}
	return &Exporter{
		dir:      dir,
		log:      p.Log.Named("invoice.export"),
		clock:    p.Clock,
		ids:      p.IDs,
		provider: p.Provider,
		metrics:  p.Metrics,
		jobs:     make(map[string]*Job),
	}
}

// Start begins exporting doc and returns immediately.
func (e *Exporter) Start(doc render.Document) *Job {
	job := &Job{
		ID:        e.ids.Token(),
		FileName:  doc.FileName,
		StartedAt: e.clock.Now(),
		done:      make(chan struct{}),
		status:    StatusPending,
	}

	e.mu.Lock()
	e.jobs[job.ID] = job
	e.mu.Unlock()

	e.metrics.Started()
	go e.run(job, doc)
	return job
}

// Job looks up a job started by this exporter.
func (e *Exporter) Job(id string) (*Job, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	job, ok := e.jobs[id]
	return job, ok
}

func (e *Exporter) run(job *Job, doc render.Document) {
	log := e.log.With(zap.String("export_job_id", job.ID), zap.String("file", job.FileName))

	result, err := e.write(context.Background(), doc)

	finished := e.clock.Now()
	job.mu.Lock()
	job.result = result
	job.err = err
	job.finishedAt = finished
	if err != nil {
		job.status = StatusFailed
	} else {
		job.status = StatusSucceeded
	}
	job.mu.Unlock()
	close(job.done)

	e.metrics.Finished(metrics.ExportFormatPDF, finished.Sub(job.StartedAt), err)
	if err != nil {
		log.Error("export failed", zap.Error(err))
		return
	}
	log.Info("export written", zap.String("path", result.Path), zap.Int("bytes", result.Size))
}

// write renders into a temp file and renames it into place, so a failed export
// never leaves a partial file under the final name.
func (e *Exporter) write(ctx context.Context, doc render.Document) (Result, error) {
	content, err := e.provider.GenerateInvoice(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", metrics.ExportErrorRender, err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return Result{}, err
	}
	tmp, err := os.CreateTemp(e.dir, ".fatura-*.pdf.tmp")
	if err != nil {
		return Result{}, err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, err
	}

	final := filepath.Join(e.dir, doc.FileName)
	if err := os.Rename(tmpPath, final); err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, err
	}
	return Result{Path: final, Size: len(content)}, nil
}
