package session

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type Counter func(ctx context.Context) (int64, error)

type StatsSources struct {
	Accounts           Counter
	ActiveCouples      Counter
	PendingWithdrawals Counter
	Circulation        Counter
}

type Stats struct {
	Accounts           int64 `json:"accounts"`
	ActiveCouples      int64 `json:"active_couples"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
	Circulation        int64 `json:"credits_in_circulation"`
}

// Stats runs the admin counters concurrently and fails on the first error.
func (f *Facade) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	g, gCtx := errgroup.WithContext(ctx)

	for name, job := range map[string]struct {
		count Counter
		dst   *int64
	}{
		"accounts":            {f.Counters.Accounts, &st.Accounts},
		"active couples":      {f.Counters.ActiveCouples, &st.ActiveCouples},
		"pending withdrawals": {f.Counters.PendingWithdrawals, &st.PendingWithdrawals},
		"circulation":         {f.Counters.Circulation, &st.Circulation},
	} {
		if job.count == nil {
			continue
		}

		g.Go(func() error {
			n, err := job.count(gCtx)
			if err != nil {
				return fmt.Errorf("counting %s: %w", name, err)
			}

			*job.dst = n

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &st, nil
}
