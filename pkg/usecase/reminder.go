package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/interfaces"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/domain/model/config"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
)

// ReminderUseCase runs the daily reply reminder
type ReminderUseCase struct {
	chat    interfaces.ChatService
	groups  interfaces.GroupDirectory
	leave   interfaces.LeaveDirectory
	holiday *HolidayOracle
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	cfg     config.Reminder
}

// NewReminderUseCase creates a ReminderUseCase sharing the collaborators of uc
func NewReminderUseCase(uc *UseCases, cfg config.Reminder) *ReminderUseCase {
	return &ReminderUseCase{
		chat:    uc.chat,
		groups:  uc.groups,
		leave:   uc.leave,
		holiday: uc.holiday,
		now:     uc.now,
		sleep:   uc.sleep,
		cfg:     cfg,
	}
}

// Run performs one reminder run. Non-working days, a missing prompt and an
// empty group end the run early without error. Failures reading history,
// membership or replies abort the run. Failed posts are logged and counted
// in the summary only.
func (uc *ReminderUseCase) Run(ctx context.Context) (*model.RunSummary, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate run id")
	}
	logger := logging.From(ctx).With("run_id", runID.String())
	ctx = logging.With(ctx, logger)

	now := uc.now().In(uc.cfg.Location)
	summary := &model.RunSummary{
		Date:   model.DateOf(now),
		DryRun: uc.cfg.DryRun,
	}
	defer func() {
		logger.Info("Reminder run finished", "summary", summary)
	}()

	if uc.holiday != nil {
		verdict := uc.holiday.Check(ctx, now)
		if verdict.NonWorking {
			logger.Info("Non-working day, skipping run",
				"label", verdict.Label,
				"source", verdict.Source,
			)
			summary.Skipped = model.SkipHoliday
			summary.HolidayLabel = verdict.Label
			return summary, nil
		}
	}

	prompt, err := uc.FindTodaysPrompt(ctx, now)
	if err != nil {
		return summary, err
	}
	if prompt == nil {
		logger.Info("No prompt found today, nothing to do", ChannelIDKey, uc.cfg.ChannelID)
		summary.Skipped = model.SkipNoPrompt
		return summary, nil
	}
	summary.PromptTS = prompt.Timestamp
	logger.Info("Found today's prompt", ThreadTSKey, prompt.Timestamp)

	members, err := uc.groups.ListGroupMembers(ctx, uc.cfg.GroupID)
	if err != nil {
		return summary, goerr.Wrap(err, "failed to list group members", goerr.V(GroupIDKey, uc.cfg.GroupID))
	}
	summary.MemberCount = len(members)
	if len(members) == 0 {
		logger.Info("Group has no members, nothing to do", GroupIDKey, uc.cfg.GroupID)
		summary.Skipped = model.SkipEmptyGroup
		return summary, nil
	}

	responders, err := uc.ListResponders(ctx, prompt.Timestamp)
	if err != nil {
		return summary, err
	}
	summary.ResponderCount = len(responders)

	gap := ComputeGap(members, responders)
	summary.RawGap = gap

	filtered := uc.FilterWorking(ctx, gap, now)
	summary.Excluded = filtered.Excluded
	summary.Unverifiable = filtered.Unverifiable
	summary.Reminded = filtered.Kept

	dispatched := uc.Dispatch(ctx, prompt.Timestamp, filtered.Kept)
	summary.AllClear = dispatched.AllClear
	summary.BatchesPosted = dispatched.Posted
	summary.BatchesFailed = dispatched.Failed

	if dispatched.Posted == 0 && dispatched.Failed > 0 {
		logger.Error("No reminder reached the thread",
			ChannelIDKey, uc.cfg.ChannelID,
			ThreadTSKey, prompt.Timestamp,
			"failed", dispatched.Failed,
		)
	}

	return summary, nil
}
