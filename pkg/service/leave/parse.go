package leave

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/tidwall/gjson"
)

// ErrInvalidPayload is returned when a response body is not a recognizable payload
var ErrInvalidPayload = goerr.New("invalid leave calendar payload")

// listOf returns the array carried by body. The API returns either a bare
// array or an object wrapping it under one of keys.
func listOf(body []byte, keys ...string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, goerr.Wrap(ErrInvalidPayload, "response is not JSON", goerr.V("body", truncate(body)))
	}

	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return root.Array(), nil
	}
	if root.IsObject() {
		for _, key := range keys {
			if v := root.Get(key); v.IsArray() {
				return v.Array(), nil
			}
		}
		// A single object is a list of one
		return []gjson.Result{root}, nil
	}

	return nil, goerr.Wrap(ErrInvalidPayload, "response is neither an array nor an object", goerr.V("body", truncate(body)))
}

// first returns the first non-empty value among paths
func first(v gjson.Result, paths ...string) string {
	for _, p := range paths {
		if r := v.Get(p); r.Exists() && r.Type != gjson.Null {
			if s := strings.TrimSpace(r.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// parseUsers normalizes a user directory response into LeaveUser records.
// Entries without an id are dropped.
func parseUsers(body []byte) ([]model.LeaveUser, error) {
	items, err := listOf(body, "users", "data", "results")
	if err != nil {
		return nil, err
	}

	users := make([]model.LeaveUser, 0, len(items))
	for _, item := range items {
		id := first(item, "id", "userId", "user_id")
		if id == "" {
			continue
		}

		users = append(users, model.LeaveUser{
			ID:        id,
			Email:     first(item, "email", "emailAddress", "email_address"),
			FirstName: first(item, "firstname", "firstName", "first_name"),
			LastName:  first(item, "surname", "lastName", "lastname", "last_name"),
		})
	}
	return users, nil
}

// parseAbsences normalizes an absence list response into LeaveRecord
// records. Absence entries arrive flat or nested (user and leave type as
// sub-objects). It also returns the link to the next page, if any.
func parseAbsences(body []byte) ([]model.LeaveRecord, string, error) {
	items, err := listOf(body, "holidays", "absences", "data", "results")
	if err != nil {
		return nil, "", err
	}

	records := make([]model.LeaveRecord, 0, len(items))
	for _, item := range items {
		userID := first(item, "userId", "user_id", "user.id", "owner.id", "userid")
		if userID == "" {
			continue
		}

		records = append(records, model.LeaveRecord{
			UserID:    userID,
			LeaveType: first(item, "leaveType.name", "leaveType", "leave_type.name", "leave_type", "leaveTypeName", "type.name", "type"),
			Status:    first(item, "status", "bookingStatus", "state"),
			Start:     parseDate(first(item, "startDate", "start_date", "start", "from")),
			End:       parseDate(first(item, "endDate", "end_date", "end", "to")),
		})
	}

	next := ""
	if root := gjson.ParseBytes(body); root.IsObject() {
		next = first(root, "nextPageLink", "next_page", "links.next")
	}

	return records, next, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// parseDate parses the date part of s. Unknown formats yield the zero time.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

func truncate(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
