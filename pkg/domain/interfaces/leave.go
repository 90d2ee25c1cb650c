package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/nudger/pkg/domain/model"
)

// LeaveDirectory reports whether an identity has an absence recorded on a date
type LeaveDirectory interface {
	Availability(ctx context.Context, identity model.Identity, date time.Time) (*model.Availability, error)
}
