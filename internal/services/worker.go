package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
)

// ReindexWorker rebuilds the volatile in-memory vector indexes from the
// persisted resumes and jobs at startup. Tasks run through a bounded
// channel with a fixed number of goroutines so a large backlog never
// blocks the serving process.
type ReindexWorker interface {
	Start(ctx context.Context)
	Stop()
	// Run enqueues every persisted record and returns once all of them
	// are queued.
	Run(ctx context.Context) error
}

type reindexTask struct {
	resume *models.Resume
	job    *models.JobPosting
}

type reindexWorker struct {
	resumeRepo  repositories.ResumeRepository
	jobRepo     repositories.JobRepository
	engine      MatchingEngine
	taskQueue   chan reindexTask
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	logger      *zap.Logger
}

func NewReindexWorker(
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	engine MatchingEngine,
	concurrency int,
	logger *zap.Logger,
) ReindexWorker {
	if concurrency <= 0 {
		concurrency = 3
	}
	return &reindexWorker{
		resumeRepo:  resumeRepo,
		jobRepo:     jobRepo,
		engine:      engine,
		taskQueue:   make(chan reindexTask, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start implements ReindexWorker.
func (w *reindexWorker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processTasks(ctx, i+1)
	}
	w.logger.Info("reindex worker started", zap.Int("concurrency", w.concurrency))
}

// Stop implements ReindexWorker.
func (w *reindexWorker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("reindex worker stopped")
}

// Run implements ReindexWorker.
func (w *reindexWorker) Run(ctx context.Context) error {
	resumes, err := w.resumeRepo.FindAll()
	if err != nil {
		return err
	}
	jobs, err := w.jobRepo.FindAll()
	if err != nil {
		return err
	}

	for i := range resumes {
		select {
		case w.taskQueue <- reindexTask{resume: &resumes[i]}:
		case <-w.stopChan:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for i := range jobs {
		select {
		case w.taskQueue <- reindexTask{job: &jobs[i]}:
		case <-w.stopChan:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w.logger.Info("reindex backlog enqueued",
		zap.Int("resumes", len(resumes)), zap.Int("jobs", len(jobs)))
	return nil
}

func (w *reindexWorker) processTasks(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case task := <-w.taskQueue:
			var err error
			switch {
			case task.resume != nil:
				err = w.engine.IndexResume(ctx, task.resume)
			case task.job != nil:
				err = w.engine.IndexJob(ctx, task.job)
			}
			// Already indexed entries are fine on a re-run
			if err != nil && !errors.Is(err, ErrDuplicateID) {
				w.logger.Warn("reindex task failed",
					zap.Int("worker", workerID), zap.Error(err))
			}
		}
	}
}
