package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Snapshotter records the current month for every household with a profile.
type Snapshotter interface {
	SnapshotAll(ctx context.Context, month time.Time) (int, error)
}

// MonthlySnapshot runs one snapshot pass for the month of now().
type MonthlySnapshot struct {
	svc     Snapshotter
	log     *zap.Logger
	now     func() time.Time
	timeout time.Duration
}

func NewMonthlySnapshot(svc Snapshotter, log *zap.Logger) *MonthlySnapshot {
	return &MonthlySnapshot{svc: svc, log: log, now: time.Now, timeout: 10 * time.Minute}
}

// Run implements cron.Job.
func (j *MonthlySnapshot) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	month := j.now()
	written, err := j.svc.SnapshotAll(ctx, month)
	if err != nil {
		j.log.Error("monthly snapshot failed", zap.Error(err))
		return
	}
	j.log.Info("monthly snapshot finished",
		zap.String("month", month.Format("2006-01")), zap.Int("written", written))
}

// ScheduleSnapshots starts a cron scheduler running job on spec. The caller
// stops it with Stop.
func ScheduleSnapshots(spec string, job cron.Job, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("snapshot job scheduled", zap.String("schedule", spec))
	return c, nil
}
