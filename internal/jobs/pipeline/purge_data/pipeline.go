package purge_data

import (
	jobrt "github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
)

// Run never fails the execution; retention errors are counted in the report.
func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil {
		return nil
	}
	res := p.purger.PurgeHistory(jc.Ctx)
	jc.Report("executions_deleted", res.ExecutionsDeleted)
	jc.Report("notifications_purged", res.NotificationsPurged)
	jc.Report("errors", res.Errors)
	return nil
}
