package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rejsermedboern/feedsync/app/catalog"
	"github.com/rejsermedboern/feedsync/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// TaskSchedulerInterface is the scheduling surface used by main and the
// operational API.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueSync() error
}

// Scheduler triggers periodic catalog syncs. A single worker drains the
// queue: sync runs must never overlap, since the last cache writer wins
// a full replace.
type Scheduler struct {
	syncer    *feed.Syncer
	store     *catalog.Store
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface
}

func NewScheduler(syncer *feed.Syncer, store *catalog.Store, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		syncer:    syncer,
		store:     store,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan TaskInterface, 4),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.worker()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// First sync runs at startup, not one interval later
		if err := s.EnqueueSync(); err != nil {
			slog.Warn("Failed to enqueue startup sync", "error", err)
		}

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if err := s.EnqueueSync(); err != nil {
					slog.Warn("Failed to enqueue scheduled sync", "error", err)
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

// EnqueueSync queues a catalog sync. Returns an error when the queue is
// full (a sync is already pending) or the scheduler is stopping.
func (s *Scheduler) EnqueueSync() error {
	task := NewSyncCatalogTask(s.syncer, s.store)

	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 15*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
	if retryDelay > 30*time.Second {
		retryDelay = 30 * time.Second
	}

	slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	// The retry goroutine joins the WaitGroup so Stop cannot close the
	// queue while a re-enqueue is pending.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
			return
		case <-time.After(retryDelay):
		}

		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
		case s.taskQueue <- task:
		default:
			slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID())
		}
	}()
}
