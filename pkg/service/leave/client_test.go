package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/nudger/pkg/service/leave"
	"github.com/secmon-lab/nudger/pkg/utils/ratelimit"
)

type recordedRequest struct {
	Path          string
	Query         string
	Authorization string
}

func newLeaveServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
		})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestNewClient(t *testing.T) {
	_, err := leave.NewClient("")
	gt.Error(t, err)

	c, err := leave.NewClient("secret-key")
	gt.NoError(t, err).Required()
	gt.Value(t, c).NotNil()
}

func TestClientListUsers(t *testing.T) {
	srv, reqs := newLeaveServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 101, "firstname": "Alice", "surname": "Smith", "email": "alice@example.com"}]`))
	})

	c, err := leave.NewClient("secret-key", leave.WithBaseURL(srv.URL+"/api/"))
	gt.NoError(t, err).Required()

	users, err := c.ListUsers(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, users).Length(1).Required()
	gt.Value(t, users[0].Email).Equal("alice@example.com")

	gt.Array(t, *reqs).Length(1).Required()
	gt.Value(t, (*reqs)[0].Path).Equal("/api/users")
	gt.Value(t, (*reqs)[0].Authorization).Equal("Bearer secret-key")
}

func TestClientListAbsences(t *testing.T) {
	date := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("follows pagination links", func(t *testing.T) {
		var srvURL string
		srv, reqs := newLeaveServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("pageNumber") == "" {
				_, _ = w.Write([]byte(`{"holidays": [{"userId": 101, "leaveType": "Holiday"}],
					"nextPageLink": "` + srvURL + `/api/holidays?start=2026-03-04&end=2026-03-04&pageNumber=2"}`))
				return
			}
			_, _ = w.Write([]byte(`{"holidays": [{"userId": 102, "leaveType": "Sick Leave"}], "nextPageLink": null}`))
		})
		srvURL = srv.URL

		c, err := leave.NewClient("secret-key", leave.WithBaseURL(srv.URL+"/api"))
		gt.NoError(t, err).Required()

		records, err := c.ListAbsences(context.Background(), date)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2).Required()
		gt.Value(t, records[1].LeaveType).Equal("Sick Leave")

		gt.Array(t, *reqs).Length(2).Required()
		gt.Value(t, (*reqs)[0].Path).Equal("/api/holidays")
		gt.Value(t, (*reqs)[0].Query).Equal("end=2026-03-04&start=2026-03-04")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv, _ := newLeaveServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Authorization has been denied"}`))
		})

		c, err := leave.NewClient("bad-key", leave.WithBaseURL(srv.URL+"/api"))
		gt.NoError(t, err).Required()

		_, err = c.ListAbsences(context.Background(), date)
		gt.Error(t, err)
	})

	t.Run("requests are paced by the limiter", func(t *testing.T) {
		srv, _ := newLeaveServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
		var sleeps []time.Duration
		lim := ratelimit.New(2, time.Minute,
			ratelimit.WithNow(func() time.Time { return now }),
			ratelimit.WithSleep(func(_ context.Context, d time.Duration) error {
				sleeps = append(sleeps, d)
				now = now.Add(d)
				return nil
			}),
		)

		c, err := leave.NewClient("secret-key", leave.WithBaseURL(srv.URL), leave.WithLimiter(lim))
		gt.NoError(t, err).Required()

		for range 3 {
			_, err := c.ListAbsences(context.Background(), date)
			gt.NoError(t, err).Required()
		}
		gt.Value(t, sleeps).Equal([]time.Duration{30 * time.Second})
	})
}
