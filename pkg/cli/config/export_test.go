package config

import "time"

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, userToken, apiURL string) *Slack {
	return &Slack{
		botToken:  botToken,
		userToken: userToken,
		apiURL:    apiURL,
	}
}

// NewLeaveForTest creates a Leave config for testing purposes
func NewLeaveForTest(apiKey, baseURL string) *Leave {
	return &Leave{
		apiKey:            apiKey,
		baseURL:           baseURL,
		requestsPerMinute: 50,
	}
}

// NewHolidayForTest creates a Holiday config for testing purposes
func NewHolidayForTest(jurisdiction, feedURL string, disabled bool) *Holiday {
	return &Holiday{
		jurisdiction: jurisdiction,
		feedURL:      feedURL,
		disabled:     disabled,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// ReminderForTest holds the flag values of a Reminder config for testing purposes
type ReminderForTest struct {
	ConfigPath           string
	ChannelID            string
	GroupID              string
	PromptAuthorID       string
	Keywords             []string
	ReminderText         string
	NonWorkingLeaveTypes []string
	Timezone             string
	DryRun               bool
}

// NewReminderForTest creates a Reminder config with flag defaults for testing purposes
func NewReminderForTest(v ReminderForTest) *Reminder {
	return &Reminder{
		configPath:           v.ConfigPath,
		channelID:            v.ChannelID,
		groupID:              v.GroupID,
		promptAuthorID:       v.PromptAuthorID,
		keywords:             v.Keywords,
		reminderText:         v.ReminderText,
		historyLimit:         100,
		repliesLimit:         1000,
		nonWorkingLeaveTypes: v.NonWorkingLeaveTypes,
		batchSize:            20,
		pace:                 time.Second,
		timezone:             v.Timezone,
		dryRun:               v.DryRun,
	}
}
