package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jewelsoft/estima-api/internal/domain/erp"
)

func TestRateSnapshotLoadingBeforeFirstFetch(t *testing.T) {
	svc := NewRateService(&fakeERP{}, time.Minute)

	snap := svc.Snapshot()
	assert.True(t, snap.Loading)
	assert.Zero(t, snap.GoldRate)
	assert.Empty(t, snap.Err)
}

func TestRefreshSuccess(t *testing.T) {
	svc := NewRateService(&fakeERP{}, time.Minute)

	snap := svc.Refresh(context.Background())
	assert.False(t, snap.Loading)
	assert.Equal(t, 10000.0, snap.GoldRate)
	assert.Equal(t, 120.0, snap.SilverRate)
	assert.Empty(t, snap.Err)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestRefreshTransportFailure(t *testing.T) {
	fake := &fakeERP{
		todayRate: func(ctx context.Context) (*erp.TodayRate, error) {
			return nil, errFakeDown
		},
	}
	svc := NewRateService(fake, time.Minute)

	snap := svc.Refresh(context.Background())
	assert.False(t, snap.Loading)
	assert.Contains(t, snap.Err, "backend unavailable")
	assert.Zero(t, snap.GoldRate)
}

func TestRefreshMissingRatesIsDistinctError(t *testing.T) {
	gold := erp.Number(10000)
	fake := &fakeERP{
		todayRate: func(ctx context.Context) (*erp.TodayRate, error) {
			return &erp.TodayRate{GoldRate: &gold}, nil
		},
	}
	svc := NewRateService(fake, time.Minute)

	snap := svc.Refresh(context.Background())
	assert.Equal(t, ErrRateUnavailable.Error(), snap.Err)
}

func TestErrorKeepsLastFetchTimestamp(t *testing.T) {
	var fail bool
	fake := &fakeERP{
		todayRate: func(ctx context.Context) (*erp.TodayRate, error) {
			if fail {
				return nil, errFakeDown
			}
			gold, silver := erp.Number(9800), erp.Number(118)
			return &erp.TodayRate{GoldRate: &gold, SilverRate: &silver}, nil
		},
	}
	svc := NewRateService(fake, time.Minute)

	good := svc.Refresh(context.Background())
	require.False(t, good.FetchedAt.IsZero())

	fail = true
	bad := svc.Refresh(context.Background())
	assert.NotEmpty(t, bad.Err)
	assert.Equal(t, good.FetchedAt, bad.FetchedAt)
}

func TestRecoveryClearsError(t *testing.T) {
	var fail bool
	fake := &fakeERP{
		todayRate: func(ctx context.Context) (*erp.TodayRate, error) {
			if fail {
				return nil, errFakeDown
			}
			gold, silver := erp.Number(9800), erp.Number(118)
			return &erp.TodayRate{GoldRate: &gold, SilverRate: &silver}, nil
		},
	}
	svc := NewRateService(fake, time.Minute)

	fail = true
	require.NotEmpty(t, svc.Refresh(context.Background()).Err)

	fail = false
	snap := svc.Refresh(context.Background())
	assert.Empty(t, snap.Err)
	assert.Equal(t, 9800.0, snap.GoldRate)
}
