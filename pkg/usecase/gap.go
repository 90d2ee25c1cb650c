package usecase

import "github.com/secmon-lab/nudger/pkg/domain/model"

// ComputeGap returns the members that are not responders, keeping the order
// of members and dropping duplicates
func ComputeGap(members, responders []model.UserID) []model.UserID {
	skip := make(map[model.UserID]struct{}, len(responders)+len(members))
	for _, r := range responders {
		skip[r] = struct{}{}
	}

	gap := make([]model.UserID, 0, len(members))
	for _, m := range members {
		if m == "" {
			continue
		}
		if _, ok := skip[m]; ok {
			continue
		}
		skip[m] = struct{}{}
		gap = append(gap, m)
	}
	return gap
}
