package runtime

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

/*
Context is the handle a job body receives for a single run.
It carries:
  - Ctx: cancellation for the run (host shutdown, manual trigger deadline)
  - JobID / ExecutionID: which job is running and the history row it writes to
  - Manual: true when started by RunNow instead of the cron clock
  - Log: a logger already tagged with the job id

Bodies report counters through Report; the host logs them when the run ends.
*/
type Context struct {
	Ctx         context.Context
	JobID       string
	ExecutionID uuid.UUID
	Manual      bool
	Log         *logger.Logger

	mu     sync.Mutex
	result map[string]any
}

func NewContext(ctx context.Context, jobID string, executionID uuid.UUID, manual bool, log *logger.Logger) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Ctx:         ctx,
		JobID:       jobID,
		ExecutionID: executionID,
		Manual:      manual,
		Log:         log.With("job", jobID, "execution_id", executionID.String()),
		result:      map[string]any{},
	}
}

// Report records a summary value for the run. Later calls overwrite earlier ones.
func (c *Context) Report(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result[key] = v
}

// Result returns a copy of the reported values.
func (c *Context) Result() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.result))
	for k, v := range c.result {
		out[k] = v
	}
	return out
}

// ResultKV flattens Result into sorted key/value pairs for structured logging.
func (c *Context) ResultKV() []any {
	res := c.Result()
	keys := make([]string, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, res[k])
	}
	return out
}
