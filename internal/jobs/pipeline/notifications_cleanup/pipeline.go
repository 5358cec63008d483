package notifications_cleanup

import (
	jobrt "github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil {
		return nil
	}
	res := p.expirer.ExpireNotifications(jc.Ctx)
	jc.Report("expired", res.NotificationsExpired)
	jc.Report("errors", res.Errors)
	return nil
}
