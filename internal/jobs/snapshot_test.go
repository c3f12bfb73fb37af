package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSnapshotter struct {
	months []time.Time
	err    error
}

func (f *fakeSnapshotter) SnapshotAll(_ context.Context, month time.Time) (int, error) {
	f.months = append(f.months, month)
	return len(f.months), f.err
}

func TestMonthlySnapshot_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fake := &fakeSnapshotter{}
	job := NewMonthlySnapshot(fake, zap.New(core))
	fixed := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	job.Run()

	require.Len(t, fake.months, 1)
	assert.Equal(t, fixed, fake.months[0])
	assert.Equal(t, 1, logs.FilterMessage("monthly snapshot finished").Len())
}

func TestMonthlySnapshot_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	job := NewMonthlySnapshot(&fakeSnapshotter{err: errors.New("db down")}, zap.New(core))

	job.Run()

	assert.Equal(t, 1, logs.FilterMessage("monthly snapshot failed").Len())
}

func TestScheduleSnapshots_RejectsBadSpec(t *testing.T) {
	_, err := ScheduleSnapshots("every now and then", NewMonthlySnapshot(&fakeSnapshotter{}, zap.NewNop()), zap.NewNop())
	assert.Error(t, err)

	c, err := ScheduleSnapshots("@monthly", NewMonthlySnapshot(&fakeSnapshotter{}, zap.NewNop()), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
