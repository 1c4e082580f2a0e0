package splitter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mixsplit/mixsplit/internal/fetch"
	"github.com/mixsplit/mixsplit/internal/ffmpeg"
	"github.com/mixsplit/mixsplit/internal/model"
	"github.com/mixsplit/mixsplit/internal/naming"
	"github.com/mixsplit/mixsplit/internal/plan"
	"github.com/mixsplit/mixsplit/internal/tags"
	"github.com/mixsplit/mixsplit/internal/tracklist"
)

// Worker limits
const (
	MinWorkers = 1
	MaxWorkers = 10
)

// Directory permissions for created output directories
const (
	OutputDirPermissions = 0755
)

// Job ID prefix
const (
	JobIDPrefix = "split-"
)

// DurationProber reports the total duration of an audio file.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
}

// Extractor performs the time-range cut for one segment.
type Extractor interface {
	Extract(ctx context.Context, req ffmpeg.Request) error
}

// Fetcher resolves a URL into a local audio file.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options configures a split run.
type Options struct {
	OutputDir    string // empty: a directory next to the source, named after it
	Workers      int    // parallel extractions, clamped to [1, 10]
	BestEffort   bool   // keep extracting after a failed segment
	NumberTracks bool   // prefix output names with the track number
	WriteTags    bool   // apply native tags after each extraction
}

// Plan is a fully validated run: everything needed to extract, and nothing
// that can still fail validation.
type Plan struct {
	Job      *model.SplitJob
	Segments []model.Segment
	Outputs  []string // destination paths, aligned with Segments
	Album    string
	Total    time.Duration
}

// Service runs the split pipeline.
type Service struct {
	prober    DurationProber
	extractor Extractor
	fetcher   Fetcher
	opts      Options

	jobs      map[string]*model.SplitJob
	jobsMutex sync.RWMutex
	onUpdate  func(*model.SplitJob)

	// applyTags is swappable for tests.
	applyTags func(ctx context.Context, path string, seg model.Segment, album string, trackCount int) error
}

// NewService creates a split service around the given collaborators.
func NewService(prober DurationProber, extractor Extractor, fetcher Fetcher, opts Options) *Service {
	return &Service{
		prober:    prober,
		extractor: extractor,
		fetcher:   fetcher,
		opts:      opts,
		jobs:      make(map[string]*model.SplitJob),
		applyTags: tags.Apply,
	}
}

// SetUpdateCallback sets the callback function for job updates
func (s *Service) SetUpdateCallback(callback func(*model.SplitJob)) {
	s.onUpdate = callback
}

// GetJob returns a job by ID
func (s *Service) GetJob(id string) (*model.SplitJob, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[id]
	return job, exists
}

// PrepareRequest carries the inputs of one run.
type PrepareRequest struct {
	TimingPath string // where TimingText came from, for diagnostics
	TimingText string // full text of the timing file
	Source     string // path or URL; overrides the timing file header
}

// Prepare parses, resolves, and validates a run without touching any output
// path. Fetching the source (when it is a URL) and probing its duration do
// happen here; both are read-only with respect to the output.
func (s *Service) Prepare(ctx context.Context, req PrepareRequest) (*Plan, error) {
	job := &model.SplitJob{
		ID:         generateJobID(),
		TimingPath: req.TimingPath,
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}
	s.jobsMutex.Lock()
	s.jobs[job.ID] = job
	s.jobsMutex.Unlock()

	tl, err := tracklist.Parse(req.TimingText)
	if err != nil {
		return nil, s.failJob(job, fmt.Errorf("%s: %w", req.TimingPath, err))
	}

	source := req.Source
	if source == "" {
		source = tl.Source
	}
	if source == "" {
		return nil, s.failJob(job, fmt.Errorf("%s: no source audio given on the command line or in the timing file", req.TimingPath))
	}

	if fetch.IsURL(source) {
		s.setStatus(job, model.TaskStatusFetching)
		path, err := s.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, s.failJob(job, err)
		}
		log.Printf("Fetched %s to %s", source, path)
		source = path
	} else if _, err := os.Stat(source); err != nil {
		return nil, s.failJob(job, fmt.Errorf("source audio %s: %w", source, err))
	}
	job.Source = source

	s.setStatus(job, model.TaskStatusStarting)
	total, err := s.prober.ProbeDuration(ctx, source)
	if err != nil {
		return nil, s.failJob(job, err)
	}

	segments, err := plan.Plan(tl, total, source)
	if err != nil {
		return nil, s.failJob(job, fmt.Errorf("%s: %w", req.TimingPath, err))
	}

	outDir := s.opts.OutputDir
	if outDir == "" {
		outDir = defaultOutputDir(source)
	}

	album := sourceStem(source)
	ext := filepath.Ext(source)
	namer := naming.NewNamer(s.opts.NumberTracks, len(segments))
	outputs := make([]string, 0, len(segments))
	for _, seg := range segments {
		outputs = append(outputs, filepath.Join(outDir, namer.Name(seg)+ext))
	}

	job.OutputDir = outDir
	job.Total = len(segments)
	s.notifyUpdate(job)

	return &Plan{
		Job:      job,
		Segments: segments,
		Outputs:  outputs,
		Album:    album,
		Total:    total,
	}, nil
}

// Execute cuts every segment of a prepared plan. With Workers == 1 segments
// are extracted strictly in plan order; with more workers order is not
// guaranteed but segments never overlap, so runs stay independent.
func (s *Service) Execute(ctx context.Context, p *Plan) error {
	job := p.Job
	s.setStatus(job, model.TaskStatusExtracting)

	if err := os.MkdirAll(job.OutputDir, OutputDirPermissions); err != nil {
		return s.failJob(job, fmt.Errorf("creating output directory: %w", err))
	}

	workers := clampWorkers(s.opts.Workers)

	var err error
	if workers == MinWorkers {
		err = s.extractSequential(ctx, p)
	} else {
		err = s.extractParallel(ctx, p, workers)
	}
	if err != nil {
		return s.failJob(job, err)
	}

	s.jobsMutex.Lock()
	job.Status = model.TaskStatusCompleted
	job.Progress = 1.0
	job.FinishedAt = time.Now()
	s.jobsMutex.Unlock()
	s.notifyUpdate(job)
	return nil
}

func (s *Service) extractSequential(ctx context.Context, p *Plan) error {
	var failures []error
	for i, seg := range p.Segments {
		if err := s.extractOne(ctx, p, i, seg); err != nil {
			if !s.opts.BestEffort {
				return err
			}
			failures = append(failures, err)
			continue
		}
		s.markDone(p.Job)
	}
	return errors.Join(failures...)
}

func (s *Service) extractParallel(ctx context.Context, p *Plan, workers int) error {
	if s.opts.BestEffort {
		var mu sync.Mutex
		var failures []error
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, seg := range p.Segments {
			g.Go(func() error {
				if err := s.extractOne(ctx, p, i, seg); err != nil {
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
					return nil
				}
				s.markDone(p.Job)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		return errors.Join(failures...)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seg := range p.Segments {
		g.Go(func() error {
			if err := s.extractOne(ctx, p, i, seg); err != nil {
				return err
			}
			s.markDone(p.Job)
			return nil
		})
	}
	return g.Wait()
}

// extractOne cuts a single segment and tags the result.
func (s *Service) extractOne(ctx context.Context, p *Plan, i int, seg model.Segment) error {
	req := ffmpeg.Request{
		Segment:      seg,
		DestPath:     p.Outputs[i],
		Album:        p.Album,
		TrackCount:   len(p.Segments),
		ToEOF:        seg.End == p.Total,
		WithMetadata: true,
	}
	if err := s.extractor.Extract(ctx, req); err != nil {
		return err
	}

	if s.opts.WriteTags {
		if err := s.applyTags(ctx, p.Outputs[i], seg, p.Album, len(p.Segments)); err != nil {
			// Tagging is best effort on top of ffmpeg's own metadata pass.
			log.Printf("Native tagging skipped for %s: %v", p.Outputs[i], err)
		}
	}
	return nil
}

func (s *Service) markDone(job *model.SplitJob) {
	s.jobsMutex.Lock()
	job.Done++
	if job.Total > 0 {
		job.Progress = float64(job.Done) / float64(job.Total)
	}
	s.jobsMutex.Unlock()
	s.notifyUpdate(job)
}

func (s *Service) setStatus(job *model.SplitJob, status model.TaskStatus) {
	s.jobsMutex.Lock()
	job.Status = status
	s.jobsMutex.Unlock()
	s.notifyUpdate(job)
}

// failJob records the error state and passes the error back to the caller.
func (s *Service) failJob(job *model.SplitJob, err error) error {
	s.jobsMutex.Lock()
	job.Status = model.TaskStatusError
	job.LastError = err.Error()
	job.FinishedAt = time.Now()
	s.jobsMutex.Unlock()
	s.notifyUpdate(job)
	return err
}

func (s *Service) notifyUpdate(job *model.SplitJob) {
	if s.onUpdate != nil {
		s.onUpdate(job)
	}
}

// defaultOutputDir puts tracks in a directory next to the source, named after
// the source file without its extension.
func defaultOutputDir(source string) string {
	return filepath.Join(filepath.Dir(source), sourceStem(source))
}

func sourceStem(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func clampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// generateJobID generates a unique job ID using UUID v7 for better uniqueness and time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
