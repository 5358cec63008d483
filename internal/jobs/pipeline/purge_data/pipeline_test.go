package purge_data

import (
	"context"
	"testing"

	"github.com/google/uuid"

	jobrt "github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
	"github.com/yungbote/deliverysla-backend/internal/modules/retention"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type stubPurger retention.Result

func (s stubPurger) PurgeHistory(context.Context) retention.Result { return retention.Result(s) }

func TestRun_ErrorsDoNotFailExecution(t *testing.T) {
	p := New(logger.Nop(), stubPurger{ExecutionsDeleted: 5, Errors: 1})
	jc := jobrt.NewContext(context.Background(), p.Type(), uuid.New(), false, logger.Nop())
	if err := p.Run(jc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	res := jc.Result()
	if res["executions_deleted"] != int64(5) || res["errors"] != 1 {
		t.Fatalf("Result: got=%v", res)
	}
}
