package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/nudger/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// ReminderFile is the optional TOML file carrying list-valued and text settings
type ReminderFile struct {
	Keywords             []string `toml:"keywords"`
	NonWorkingLeaveTypes []string `toml:"non_working_leave_types"`
	ReminderText         string   `toml:"reminder_text"`
	AllClearText         string   `toml:"all_clear_text"`
	PromptAuthorID       string   `toml:"prompt_author_id"`
}

// LoadReminderFile loads a ReminderFile from path
func LoadReminderFile(path string) (*ReminderFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file ReminderFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("error", err.Error()))
	}

	return &file, nil
}

type Reminder struct {
	configPath           string
	channelID            string
	groupID              string
	promptAuthorID       string
	keywords             []string
	reminderText         string
	allClearText         string
	historyLimit         int
	repliesLimit         int
	nonWorkingLeaveTypes []string
	batchSize            int
	pace                 time.Duration
	timezone             string
	dryRun               bool
}

func (x *Reminder) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML file with keywords, leave types and message texts",
			Category:    "Reminder",
			Destination: &x.configPath,
			Sources:     cli.EnvVars("NUDGER_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "channel-id",
			Usage:       "Channel where the daily prompt is posted",
			Category:    "Reminder",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("NUDGER_CHANNEL_ID"),
		},
		&cli.StringFlag{
			Name:        "group-id",
			Usage:       "User group whose members are expected to reply",
			Category:    "Reminder",
			Destination: &x.groupID,
			Sources:     cli.EnvVars("NUDGER_GROUP_ID"),
		},
		&cli.StringFlag{
			Name:        "prompt-author-id",
			Usage:       "User or bot ID of the workflow posting the prompt (any workflow when empty)",
			Category:    "Reminder",
			Destination: &x.promptAuthorID,
			Sources:     cli.EnvVars("NUDGER_PROMPT_AUTHOR_ID"),
		},
		&cli.StringSliceFlag{
			Name:        "keyword",
			Usage:       "Keyword identifying the prompt, case-insensitive (can be specified multiple times)",
			Category:    "Reminder",
			Destination: &x.keywords,
			Sources:     cli.EnvVars("NUDGER_KEYWORDS"),
		},
		&cli.StringFlag{
			Name:        "reminder-text",
			Usage:       "Text preceding the mentions in a reminder",
			Category:    "Reminder",
			Destination: &x.reminderText,
			Sources:     cli.EnvVars("NUDGER_REMINDER_TEXT"),
		},
		&cli.StringFlag{
			Name:        "all-clear-text",
			Usage:       "Text posted when everyone has replied",
			Category:    "Reminder",
			Destination: &x.allClearText,
			Sources:     cli.EnvVars("NUDGER_ALL_CLEAR_TEXT"),
		},
		&cli.IntFlag{
			Name:        "history-limit",
			Usage:       "Number of recent channel messages scanned for the prompt",
			Category:    "Reminder",
			Value:       domainConfig.DefaultHistoryLimit,
			Destination: &x.historyLimit,
			Sources:     cli.EnvVars("NUDGER_HISTORY_LIMIT"),
		},
		&cli.IntFlag{
			Name:        "replies-limit",
			Usage:       "Maximum number of thread replies read",
			Category:    "Reminder",
			Value:       domainConfig.DefaultRepliesLimit,
			Destination: &x.repliesLimit,
			Sources:     cli.EnvVars("NUDGER_REPLIES_LIMIT"),
		},
		&cli.StringSliceFlag{
			Name:        "non-working-leave-type",
			Usage:       "Leave type label meaning not working, matched as a case-insensitive substring (can be specified multiple times)",
			Category:    "Reminder",
			Destination: &x.nonWorkingLeaveTypes,
			Sources:     cli.EnvVars("NUDGER_NON_WORKING_LEAVE_TYPES"),
		},
		&cli.IntFlag{
			Name:        "batch-size",
			Usage:       "Mentions per reminder message",
			Category:    "Reminder",
			Value:       20,
			Destination: &x.batchSize,
			Sources:     cli.EnvVars("NUDGER_BATCH_SIZE"),
		},
		&cli.DurationFlag{
			Name:        "pace",
			Usage:       "Delay between successive reminder messages",
			Category:    "Reminder",
			Value:       domainConfig.DefaultPace,
			Destination: &x.pace,
			Sources:     cli.EnvVars("NUDGER_PACE"),
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA timezone deciding today's date (server local time when empty)",
			Category:    "Reminder",
			Destination: &x.timezone,
			Sources:     cli.EnvVars("NUDGER_TIMEZONE", "TZ"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Log the reminders instead of posting them",
			Category:    "Reminder",
			Destination: &x.dryRun,
			Sources:     cli.EnvVars("NUDGER_DRY_RUN"),
		},
	}
}

func (x Reminder) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.configPath),
		slog.String("channel-id", x.channelID),
		slog.String("group-id", x.groupID),
		slog.String("prompt-author-id", x.promptAuthorID),
		slog.Any("keywords", x.keywords),
		slog.Int("history-limit", x.historyLimit),
		slog.Int("replies-limit", x.repliesLimit),
		slog.Any("non-working-leave-types", x.nonWorkingLeaveTypes),
		slog.Int("batch-size", x.batchSize),
		slog.String("pace", x.pace.String()),
		slog.String("timezone", x.timezone),
		slog.Bool("dry-run", x.dryRun),
	)
}

// Location resolves the configured timezone
func (x *Reminder) Location() (*time.Location, error) {
	if x.timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(x.timezone)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTimezone, "failed to load timezone",
			goerr.V(FlagKey, "timezone"),
			goerr.V(ValueKey, x.timezone),
			goerr.V("error", err.Error()))
	}
	return loc, nil
}

// Build validates the settings and merges the config file into them.
// Values given by flags or environment win over the file.
func (x *Reminder) Build() (domainConfig.Reminder, error) {
	if x.channelID == "" {
		return domainConfig.Reminder{}, goerr.Wrap(ErrMissingRequired, "channel ID is required", goerr.V(FlagKey, "channel-id"))
	}
	if x.groupID == "" {
		return domainConfig.Reminder{}, goerr.Wrap(ErrMissingRequired, "group ID is required", goerr.V(FlagKey, "group-id"))
	}
	if x.historyLimit < 1 || x.repliesLimit < 1 || x.batchSize < 1 {
		return domainConfig.Reminder{}, goerr.Wrap(ErrInvalidConfig, "limits and batch size must be positive",
			goerr.V("history_limit", x.historyLimit),
			goerr.V("replies_limit", x.repliesLimit),
			goerr.V("batch_size", x.batchSize))
	}

	loc, err := x.Location()
	if err != nil {
		return domainConfig.Reminder{}, err
	}

	cfg := domainConfig.Reminder{
		ChannelID:            x.channelID,
		GroupID:              x.groupID,
		PromptAuthorID:       x.promptAuthorID,
		Keywords:             x.keywords,
		ReminderText:         x.reminderText,
		AllClearText:         x.allClearText,
		HistoryLimit:         x.historyLimit,
		RepliesLimit:         x.repliesLimit,
		NonWorkingLeaveTypes: x.nonWorkingLeaveTypes,
		BatchSize:            x.batchSize,
		Pace:                 x.pace,
		Location:             loc,
		DryRun:               x.dryRun,
	}

	if x.configPath != "" {
		file, err := LoadReminderFile(x.configPath)
		if err != nil {
			return domainConfig.Reminder{}, err
		}
		mergeFile(&cfg, file)
	}

	return cfg.WithDefaults(), nil
}

func mergeFile(cfg *domainConfig.Reminder, file *ReminderFile) {
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = file.Keywords
	}
	if len(cfg.NonWorkingLeaveTypes) == 0 {
		cfg.NonWorkingLeaveTypes = file.NonWorkingLeaveTypes
	}
	if cfg.ReminderText == "" {
		cfg.ReminderText = file.ReminderText
	}
	if cfg.AllClearText == "" {
		cfg.AllClearText = file.AllClearText
	}
	if cfg.PromptAuthorID == "" {
		cfg.PromptAuthorID = file.PromptAuthorID
	}
}
