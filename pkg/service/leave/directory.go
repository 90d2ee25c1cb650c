package leave

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/cache"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
)

const (
	// DefaultCacheTTL is how long the user directory and absence lists are reused
	DefaultCacheTTL = time.Hour

	// DefaultFailureTTL is how long a failed fetch is answered from memory
	// before the leave service is asked again
	DefaultFailureTTL = 5 * time.Minute

	usersCacheKey = "users"
)

// Directory answers availability questions from the leave calendar. It
// implements interfaces.LeaveDirectory.
type Directory struct {
	api       API
	users     *cache.Cache[string, []model.LeaveUser]
	absences  *cache.Cache[string, []model.LeaveRecord]
	failures  *cache.Cache[string, error]
	cacheOpts []cache.Option
	ttl       time.Duration
	failTTL   time.Duration
}

// DirectoryOption is a functional option for Directory configuration
type DirectoryOption func(*Directory)

// WithCacheTTL sets the TTL of the user and absence caches
func WithCacheTTL(ttl time.Duration) DirectoryOption {
	return func(d *Directory) {
		d.ttl = ttl
	}
}

// WithFailureTTL sets how long a failed fetch is remembered
func WithFailureTTL(ttl time.Duration) DirectoryOption {
	return func(d *Directory) {
		d.failTTL = ttl
	}
}

// WithNow replaces the clock used for cache expiry
func WithNow(now func() time.Time) DirectoryOption {
	return func(d *Directory) {
		d.cacheOpts = append(d.cacheOpts, cache.WithNow(now))
	}
}

// NewDirectory creates a Directory backed by api
func NewDirectory(api API, opts ...DirectoryOption) *Directory {
	d := &Directory{
		api:     api,
		ttl:     DefaultCacheTTL,
		failTTL: DefaultFailureTTL,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.users = cache.New[string, []model.LeaveUser](d.ttl, d.cacheOpts...)
	d.absences = cache.New[string, []model.LeaveRecord](d.ttl, d.cacheOpts...)
	d.failures = cache.New[string, error](d.failTTL, d.cacheOpts...)
	return d
}

// Availability reports whether identity is found in the leave calendar and
// which absences it has on date. An identity that cannot be matched is
// reported as not found without error.
func (d *Directory) Availability(ctx context.Context, identity model.Identity, date time.Time) (*model.Availability, error) {
	users, err := d.listUsers(ctx)
	if err != nil {
		return nil, err
	}

	user, method := matchUser(identity, users)
	if user == nil {
		return &model.Availability{}, nil
	}

	logging.From(ctx).Debug("Matched identity in leave calendar",
		"user_id", identity.ID,
		"leave_user_id", user.ID,
		"matched_by", method,
	)

	records, err := d.listAbsences(ctx, date)
	if err != nil {
		return nil, err
	}

	result := &model.Availability{
		Found:       true,
		MatchedBy:   method,
		LeaveUserID: user.ID,
	}
	for _, r := range records {
		if r.UserID != user.ID || !r.Active() || !r.Covers(date) {
			continue
		}
		result.LeaveTypes = append(result.LeaveTypes, r.LeaveType)
	}

	return result, nil
}

func (d *Directory) listUsers(ctx context.Context) ([]model.LeaveUser, error) {
	if users, ok := d.users.Get(usersCacheKey); ok {
		return users, nil
	}

	if err, ok := d.failures.Get(usersCacheKey); ok {
		return nil, err
	}

	users, err := d.api.ListUsers(ctx)
	if err != nil {
		err = goerr.Wrap(err, "failed to load leave calendar users")
		d.failures.Set(usersCacheKey, err)
		return nil, err
	}
	d.users.Set(usersCacheKey, users)

	logging.From(ctx).Debug("Loaded leave calendar users", "count", len(users))
	return users, nil
}

func (d *Directory) listAbsences(ctx context.Context, date time.Time) ([]model.LeaveRecord, error) {
	key := date.Format(time.DateOnly)
	if records, ok := d.absences.Get(key); ok {
		return records, nil
	}

	failureKey := "absences/" + key
	if err, ok := d.failures.Get(failureKey); ok {
		return nil, err
	}

	records, err := d.api.ListAbsences(ctx, date)
	if err != nil {
		err = goerr.Wrap(err, "failed to load absences", goerr.V("date", key))
		d.failures.Set(failureKey, err)
		return nil, err
	}
	d.absences.Set(key, records)

	logging.From(ctx).Debug("Loaded absences", "date", key, "count", len(records))
	return records, nil
}
