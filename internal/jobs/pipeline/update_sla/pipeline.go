package update_sla

import (
	jobrt "github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil {
		return nil
	}
	res, err := p.pass.Run(jc.Ctx)
	if err != nil {
		return err
	}
	jc.Report("candidates", res.Candidates)
	jc.Report("updated", res.Updated)
	jc.Report("notified", res.Notified)
	jc.Report("skipped", res.Skipped)
	jc.Report("failed", res.Failed)
	return nil
}
