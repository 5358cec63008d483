package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/yungbote/deliverysla-backend/internal/data/db"
	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

var (
	ErrUnknownJob = errors.New("unknown job")
	ErrJobRunning = errors.New("job already running")
	ErrStopping   = errors.New("scheduler is shutting down")
)

const maxExceptionLen = 4000

type Config struct {
	// Location evaluates cron expressions. Defaults to UTC.
	Location *time.Location
}

type Deps struct {
	DB         *gorm.DB
	Jobs       repos.SchedulerJobRepo
	Executions repos.SchedulerJobExecutionRepo
	Log        *logger.Logger
	Metrics    *observability.Metrics
	Now        func() time.Time
}

type registeredJob struct {
	spec     JobSpec
	schedule cron.Schedule
	handler  runtime.Handler
	entry    cron.EntryID
	// running serializes cron fires and manual runs of the same job.
	running sync.Mutex
}

// Host owns the cron clock, the persistent job store rows and the execution
// history. Job bodies never see a panic or an error escape past the host.
type Host struct {
	cfg  Config
	deps Deps
	log  *logger.Logger
	cron *cron.Cron

	mu      sync.Mutex
	jobs    map[string]*registeredJob
	baseCtx context.Context
	cancel  context.CancelFunc
	started bool
	// stopping is set by Shutdown; inflight.Add only happens under mu while
	// it is false.
	stopping bool

	inflight sync.WaitGroup
}

func New(cfg Config, deps Deps) *Host {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	log := deps.Log.With("component", "SchedulerHost")
	return &Host{
		cfg:  cfg,
		deps: deps,
		log:  log,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger{log: log}),
			cron.WithChain(cron.Recover(cronLogger{log: log})),
		),
		jobs:    map[string]*registeredJob{},
		baseCtx: context.Background(),
	}
}

// RegisterJob adds or replaces the job with spec.ID. The schedule row is
// upserted before the in-memory entry is swapped, so a failing store leaves
// the previous registration in place.
func (h *Host) RegisterJob(ctx context.Context, spec JobSpec, handler runtime.Handler) error {
	if spec.ID == "" {
		return fmt.Errorf("register job: empty id")
	}
	if handler == nil {
		return fmt.Errorf("register job %s: nil handler", spec.ID)
	}
	cronSpec := spec.Cron.Spec()
	sched, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return fmt.Errorf("register job %s: bad cron %q: %w", spec.ID, cronSpec, err)
	}

	now := h.deps.Now().In(h.cfg.Location)
	next := sched.Next(now).UTC()
	if err := h.deps.Jobs.Upsert(dbctx.New(ctx), &types.SchedulerJob{
		ID:          spec.ID,
		CronSpec:    cronSpec,
		NextRunTime: &next,
		UpdatedAt:   now.UTC(),
	}); err != nil {
		return fmt.Errorf("register job %s: store: %w", spec.ID, err)
	}

	rj := &registeredJob{spec: spec, schedule: sched, handler: handler}
	id := spec.ID

	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.jobs[id]; ok {
		h.cron.Remove(old.entry)
	}
	rj.entry = h.cron.Schedule(sched, cron.FuncJob(func() { h.fireScheduled(id) }))
	h.jobs[id] = rj

	h.log.Info("Job registered", "job", id, "cron", cronSpec, "next_run_time", next)
	return nil
}

// Start begins firing registered jobs. Runs outlive ctx; use Shutdown to stop.
func (h *Host) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}
	h.baseCtx, h.cancel = context.WithCancel(context.WithoutCancel(ctx))
	h.started = true
	h.stopping = false
	h.cron.Start()
	h.log.Info("Scheduler started", "jobs", len(h.jobs), "location", h.cfg.Location.String())
}

// Shutdown stops the clock and waits for running jobs. When ctx expires
// first, running jobs are cancelled and ctx's error is returned.
func (h *Host) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	started := h.started
	h.started = false
	h.stopping = true
	cancel := h.cancel
	h.mu.Unlock()

	if started {
		<-h.cron.Stop().Done()
	}
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		if cancel != nil {
			cancel()
		}
		h.log.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		if cancel != nil {
			cancel()
		}
		return ctx.Err()
	}
}

// RunNow runs the job once, outside its schedule, and returns the body's error.
func (h *Host) RunNow(ctx context.Context, id string) error {
	h.mu.Lock()
	rj, ok := h.jobs[id]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, id)
	}
	if !rj.running.TryLock() {
		return fmt.Errorf("%w: %s", ErrJobRunning, id)
	}
	defer rj.running.Unlock()
	if !h.enter() {
		return fmt.Errorf("%w: %s", ErrStopping, id)
	}
	defer h.inflight.Done()
	return h.execute(ctx, rj, true)
}

// enter registers a run with inflight unless Shutdown has begun.
func (h *Host) enter() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopping {
		return false
	}
	h.inflight.Add(1)
	return true
}

// Registered returns the registered specs sorted by id.
func (h *Host) Registered() []JobSpec {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]JobSpec, 0, len(h.jobs))
	for _, rj := range h.jobs {
		out = append(out, rj.spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (h *Host) fireScheduled(id string) {
	h.mu.Lock()
	rj, ok := h.jobs[id]
	ctx := h.baseCtx
	h.mu.Unlock()
	if !ok {
		return
	}
	if !rj.running.TryLock() {
		h.log.Warn("Job still running, skipping fire", "job", id)
		return
	}
	defer rj.running.Unlock()
	if !h.enter() {
		h.log.Info("Scheduler stopping, skipping fire", "job", id)
		return
	}
	defer h.inflight.Done()
	_ = h.execute(ctx, rj, false)
}

func (h *Host) execute(ctx context.Context, rj *registeredJob, manual bool) (err error) {
	id := rj.spec.ID
	log := h.log.With("job", id, "manual", manual)

	if h.deps.DB != nil {
		if rerr := db.Recycle(ctx, h.deps.DB); rerr != nil {
			log.Warn("Database recycle failed", "error", rerr)
		}
	}

	start := h.deps.Now()
	exec := &types.SchedulerJobExecution{
		JobID:   id,
		Status:  types.ExecutionRunning,
		RunTime: start.UTC(),
	}
	dbc := dbctx.New(ctx)
	recorded := true
	if cerr := h.deps.Executions.Create(dbc, exec); cerr != nil {
		recorded = false
		log.Error("Execution record failed", "error", cerr)
	}

	spanCtx, span := observability.StartJobSpan(ctx, id, manual)
	jc := runtime.NewContext(spanCtx, id, exec.ID, manual, h.deps.Log)
	err = runSafe(rj.handler, jc)
	observability.EndJobSpan(span, err)

	end := h.deps.Now()
	dur := end.Sub(start)
	status := types.ExecutionExecuted
	exception := ""
	if err != nil {
		status = types.ExecutionError
		exception = err.Error()
		if len(exception) > maxExceptionLen {
			exception = exception[:maxExceptionLen]
		}
	}
	if recorded {
		if ferr := h.deps.Executions.Finish(dbc, exec.ID, status, dur.Seconds(), end, exception); ferr != nil {
			log.Error("Execution finish failed", "execution_id", exec.ID, "error", ferr)
		}
	}
	h.deps.Metrics.ObserveJobRun(id, status, dur)

	next := rj.schedule.Next(end.In(h.cfg.Location)).UTC()
	if nerr := h.deps.Jobs.UpdateNextRunTime(dbc, id, &next); nerr != nil {
		log.Warn("Next run time update failed", "error", nerr)
	}

	kv := append([]any{"status", status, "duration", dur.String()}, jc.ResultKV()...)
	if err != nil {
		log.Error("Job failed", append(kv, "error", err)...)
	} else {
		log.Info("Job finished", kv...)
	}
	return err
}

func runSafe(h runtime.Handler, jc *runtime.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.Run(jc)
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
