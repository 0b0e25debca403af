package upcoming

import (
	"context"
	"time"

	"tableflip.dev/remind/pkg/app"
	"tableflip.dev/remind/pkg/printers"
)

type Upcoming struct {
	Service *app.Service
}

// Do prints the single nearest task across all partitions with its
// countdown.
func (u *Upcoming) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{}
	next, ok := u.Service.Upcoming(ctx)
	if !ok {
		pp.NoUpcoming()
		return nil
	}
	pp.UpcomingBanner(next, time.Now())
	return nil
}
