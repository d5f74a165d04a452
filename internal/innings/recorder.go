package innings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// job is one queued write. Exactly one of ball and aggregate is set.
type job struct {
	inningsID uint
	ball      *BallRecord
	aggregate *Aggregate
	attempts  int
}

func (j *job) String() string {
	if j.ball != nil {
		return fmt.Sprintf("ball seq %d (%s)", j.ball.Seq, j.ball.Outcome)
	}
	return fmt.Sprintf("aggregate %s (%s) at seq %d", j.aggregate.Score, j.aggregate.Overs, j.aggregate.LastSeq)
}

// Recorder persists ball records and aggregates in the background. Each
// innings has its own FIFO queue; a failed write stays at the head of its
// queue and blocks the writes behind it until a later flush succeeds, so an
// innings is always stored in the order it was scored. Innings do not block
// each other.
type Recorder struct {
	store Store

	mu     sync.Mutex
	queues map[uint][]*job

	// flushMu serializes flushes so two writers never race on one queue head.
	flushMu sync.Mutex
	wake    chan struct{}
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{
		store:  store,
		queues: make(map[uint][]*job),
		wake:   make(chan struct{}, 1),
	}
}

// EnqueueBall queues a ball record. It never blocks on storage.
func (r *Recorder) EnqueueBall(rec BallRecord) {
	r.enqueue(&job{inningsID: rec.InningsID, ball: &rec})
}

// EnqueueAggregate queues an aggregate score write behind the innings' balls.
func (r *Recorder) EnqueueAggregate(inningsID uint, a Aggregate) {
	r.enqueue(&job{inningsID: inningsID, aggregate: &a})
}

func (r *Recorder) enqueue(j *job) {
	r.mu.Lock()
	r.queues[j.inningsID] = append(r.queues[j.inningsID], j)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued writes for an innings.
func (r *Recorder) Pending(inningsID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queues[inningsID])
}

// Run flushes whenever work is queued, until ctx is done.
func (r *Recorder) Run(ctx context.Context) {
	log.Println("[recorder] started")
	for {
		select {
		case <-ctx.Done():
			log.Println("[recorder] stopped")
			return
		case <-r.wake:
			_ = r.Flush(ctx)
		}
	}
}

// Flush writes every queued job it can. The returned error joins the first
// failure of each innings that could not be drained.
func (r *Recorder) Flush(ctx context.Context) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	var errs []error
	for _, id := range r.inningsWithWork() {
		if err := r.flushLocked(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("innings %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// FlushInnings drains one innings' queue.
func (r *Recorder) FlushInnings(ctx context.Context, inningsID uint) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	return r.flushLocked(ctx, inningsID)
}

func (r *Recorder) flushLocked(ctx context.Context, inningsID uint) error {
	for {
		j := r.head(inningsID)
		if j == nil {
			return nil
		}
		if err := r.write(ctx, j); err != nil {
			j.attempts++
			log.Printf("[recorder] innings %d: %s failed (attempt %d): %v", inningsID, j, j.attempts, err)
			return err
		}
		if j.attempts > 0 {
			log.Printf("[recorder] innings %d: %s written after %d retries", inningsID, j, j.attempts)
		}
		r.pop(inningsID)
	}
}

func (r *Recorder) write(ctx context.Context, j *job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j.ball != nil {
		return r.store.AppendBallRecord(ctx, j.ball)
	}
	return r.store.PersistAggregateScore(ctx, j.inningsID, *j.aggregate)
}

func (r *Recorder) head(inningsID uint) *job {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.queues[inningsID]
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

func (r *Recorder) pop(inningsID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.queues[inningsID]
	if len(q) <= 1 {
		delete(r.queues, inningsID)
		return
	}
	q[0] = nil
	r.queues[inningsID] = q[1:]
}

func (r *Recorder) inningsWithWork() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint, 0, len(r.queues))
	for id := range r.queues {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
