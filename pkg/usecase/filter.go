package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/errutil"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
)

// ExclusionOnLeave is the reason recorded for members removed because of a
// non-working absence
const ExclusionOnLeave = "on_leave"

// FilterResult is the outcome of leave-aware filtering
type FilterResult struct {
	Kept         []model.UserID
	Excluded     []model.Exclusion
	Unverifiable []model.UserID
}

// FilterWorking removes from gap the members whose leave calendar shows a
// non-working absence on date. Anyone who cannot be checked stays in the gap.
// Without a leave directory the gap is returned unchanged.
func (uc *ReminderUseCase) FilterWorking(ctx context.Context, gap []model.UserID, date time.Time) *FilterResult {
	logger := logging.From(ctx)
	result := &FilterResult{}

	if uc.leave == nil {
		logger.Info("Leave calendar not configured, skipping leave filtering")
		result.Kept = append(result.Kept, gap...)
		return result
	}
	if len(gap) == 0 {
		return result
	}

	identities := uc.loadIdentities(ctx)

	for _, id := range gap {
		identity, ok := identities[id]
		if !ok || !identity.Verifiable() {
			logger.Info("Member is unverifiable, keeping in reminder", "user_id", id)
			result.Unverifiable = append(result.Unverifiable, id)
			result.Kept = append(result.Kept, id)
			continue
		}

		availability, err := uc.leave.Availability(ctx, *identity, date)
		if err != nil {
			errutil.Warn(ctx, err, "leave lookup failed, keeping member in reminder")
			result.Kept = append(result.Kept, id)
			continue
		}

		if !availability.Found {
			logger.Debug("Member not found in leave calendar", "user_id", id)
			result.Kept = append(result.Kept, id)
			continue
		}

		if label := nonWorkingLabel(availability.LeaveTypes, uc.cfg.NonWorkingLeaveTypes); label != "" {
			logger.Info("Member is on leave, excluding from reminder",
				"user_id", id,
				"leave_type", label,
				"matched_by", availability.MatchedBy,
			)
			result.Excluded = append(result.Excluded, model.Exclusion{
				UserID:    id,
				Reason:    ExclusionOnLeave,
				LeaveType: label,
			})
			continue
		}

		if availability.OnLeave() {
			logger.Debug("Member has a working absence", "user_id", id, "leave_types", availability.LeaveTypes)
		}
		result.Kept = append(result.Kept, id)
	}

	return result
}

// loadIdentities indexes workspace members by id. A failure yields an empty
// index so that every member is treated as unverifiable.
func (uc *ReminderUseCase) loadIdentities(ctx context.Context) map[model.UserID]*model.Identity {
	users, err := uc.chat.ListUsers(ctx)
	if err != nil {
		errutil.Warn(ctx, err, "failed to list workspace members")
		return nil
	}

	index := make(map[model.UserID]*model.Identity, len(users))
	for _, u := range users {
		if u != nil {
			index[u.ID] = u
		}
	}
	return index
}

func nonWorkingLabel(labels, nonWorking []string) string {
	for _, l := range labels {
		if model.IsNonWorkingLeave(l, nonWorking) {
			return l
		}
	}
	return ""
}
