package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/nudger/pkg/cli/config"
	"github.com/secmon-lab/nudger/pkg/domain/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nudger.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestReminderBuild(t *testing.T) {
	t.Run("defaults fill unset values", func(t *testing.T) {
		r := config.NewReminderForTest(config.ReminderForTest{
			ChannelID: "C0STANDUP",
			GroupID:   "S0TEAM",
			Timezone:  "Europe/London",
		})

		cfg, err := r.Build()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.ChannelID).Equal("C0STANDUP")
		gt.Value(t, cfg.Keywords).Equal([]string{"stand-up", "standup"})
		gt.Value(t, cfg.NonWorkingLeaveTypes).Equal(model.DefaultNonWorkingLeaveTypes)
		gt.Number(t, cfg.HistoryLimit).Equal(100)
		gt.Number(t, cfg.BatchSize).Equal(20)
		gt.Value(t, cfg.Pace).Equal(time.Second)
		gt.Value(t, cfg.Location.String()).Equal("Europe/London")
	})

	t.Run("channel is required", func(t *testing.T) {
		r := config.NewReminderForTest(config.ReminderForTest{GroupID: "S0TEAM"})
		_, err := r.Build()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, config.ErrMissingRequired)).Equal(true)
	})

	t.Run("group is required", func(t *testing.T) {
		r := config.NewReminderForTest(config.ReminderForTest{ChannelID: "C0STANDUP"})
		_, err := r.Build()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, config.ErrMissingRequired)).Equal(true)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		r := config.NewReminderForTest(config.ReminderForTest{
			ChannelID: "C0STANDUP",
			GroupID:   "S0TEAM",
			Timezone:  "Mars/Olympus_Mons",
		})
		_, err := r.Build()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, config.ErrInvalidTimezone)).Equal(true)
	})

	t.Run("file fills values not given by flags", func(t *testing.T) {
		path := writeFile(t, `
keywords = ["check-in", "daily update"]
non_working_leave_types = ["Holiday", "Parental leave"]
reminder_text = "Please reply in the thread"
all_clear_text = "Thanks all"
prompt_author_id = "B0WORKFLOW"
`)
		r := config.NewReminderForTest(config.ReminderForTest{
			ConfigPath:   path,
			ChannelID:    "C0STANDUP",
			GroupID:      "S0TEAM",
			ReminderText: "From the flag",
		})

		cfg, err := r.Build()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Keywords).Equal([]string{"check-in", "daily update"})
		gt.Value(t, cfg.NonWorkingLeaveTypes).Equal([]string{"Holiday", "Parental leave"})
		gt.Value(t, cfg.ReminderText).Equal("From the flag")
		gt.Value(t, cfg.AllClearText).Equal("Thanks all")
		gt.Value(t, cfg.PromptAuthorID).Equal("B0WORKFLOW")
	})

	t.Run("missing file", func(t *testing.T) {
		r := config.NewReminderForTest(config.ReminderForTest{
			ConfigPath: filepath.Join(t.TempDir(), "absent.toml"),
			ChannelID:  "C0STANDUP",
			GroupID:    "S0TEAM",
		})
		_, err := r.Build()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, config.ErrConfigNotFound)).Equal(true)
	})

	t.Run("broken file", func(t *testing.T) {
		r := config.NewReminderForTest(config.ReminderForTest{
			ConfigPath: writeFile(t, `keywords = [`),
			ChannelID:  "C0STANDUP",
			GroupID:    "S0TEAM",
		})
		_, err := r.Build()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, config.ErrInvalidConfig)).Equal(true)
	})
}
