package slack

import (
	"errors"
	"net/http"
	"slices"

	"github.com/slack-go/slack"
)

// authErrorCodes are Slack error codes meaning the credential may not perform the call
var authErrorCodes = []string{
	"not_allowed_token_type",
	"missing_scope",
	"not_authed",
	"invalid_auth",
	"no_permission",
	"access_denied",
	"token_revoked",
	"token_expired",
	"account_inactive",
	"ekm_access_denied",
}

// IsAuthError reports whether err is an authorization failure returned by Slack
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden
	}

	return slices.Contains(authErrorCodes, errorCode(err))
}

// errorCode extracts the platform-reported error code from err
func errorCode(err error) string {
	if err == nil {
		return ""
	}

	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return slackErr.Err
	}

	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}

	return err.Error()
}
