package send_mails

import (
	jobrt "github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil {
		return nil
	}
	res, err := p.dispatcher.Run(jc.Ctx)
	if err != nil {
		return err
	}
	jc.Report("pending", res.Pending)
	jc.Report("sent", res.Sent)
	jc.Report("no_recipients", res.NoRecipients)
	jc.Report("failed", res.Failed)
	jc.Report("mark_failed", res.MarkFailed)
	return nil
}
