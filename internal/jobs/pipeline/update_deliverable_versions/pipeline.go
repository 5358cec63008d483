package update_deliverable_versions

import (
	jobrt "github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil {
		return nil
	}
	res, err := p.rollover.Run(jc.Ctx)
	if err != nil {
		return err
	}
	jc.Report("candidates", res.Candidates)
	jc.Report("created", res.Created)
	jc.Report("skipped", res.Skipped)
	jc.Report("failed", res.Failed)
	return nil
}
