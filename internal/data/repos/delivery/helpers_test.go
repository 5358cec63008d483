package delivery

import types "github.com/yungbote/deliverysla-backend/internal/domain"

func ids(rows []*types.Deliverable) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
