// Package reminder schedules daily habit reminders. The rest of the system
// treats it as an external collaborator: scheduling returns an opaque
// handle (or "" when scheduling is unavailable), and cancellation is
// best-effort.
package reminder

import (
	"fmt"
	"strconv"

	"github.com/robfig/cron/v3"

	"github.com/nholden/habitgrid/internal/validation"
)

// Scheduler is the reminder collaborator contract.
type Scheduler interface {
	// Schedule registers a daily reminder at the HH:MM clock time and
	// returns an opaque handle, or "" when scheduling is unavailable.
	Schedule(habitID, name, clock string) (string, error)
	// Cancel removes a previously scheduled reminder. Unknown handles are
	// not an error.
	Cancel(handle string) error
}

// NotifyFunc delivers the reminder when it fires.
type NotifyFunc func(habitID, name string)

// CronScheduler runs reminders on an in-process cron runner. Handles are
// the cron entry ids rendered as strings.
type CronScheduler struct {
	cron   *cron.Cron
	notify NotifyFunc
}

var _ Scheduler = (*CronScheduler)(nil)

func NewCronScheduler(notify NotifyFunc) *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(cron.WithSeconds()),
		notify: notify,
	}
}

// Schedule registers a daily job at the given HH:MM time.
func (s *CronScheduler) Schedule(habitID, name, clock string) (string, error) {
	hour, minute, err := validation.ParseClock(clock)
	if err != nil {
		return "", err
	}

	// cron field order: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", minute, hour)
	id, err := s.cron.AddFunc(spec, func() {
		s.notify(habitID, name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to schedule reminder: %w", err)
	}
	return strconv.Itoa(int(id)), nil
}

// Cancel removes the cron entry behind the handle. Malformed or unknown
// handles are ignored; cancellation is best-effort by contract.
func (s *CronScheduler) Cancel(handle string) error {
	id, err := strconv.Atoi(handle)
	if err != nil {
		return nil
	}
	s.cron.Remove(cron.EntryID(id))
	return nil
}

// Start begins firing scheduled reminders.
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts the runner and waits for any running job to finish.
func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Entries reports how many reminders are currently scheduled.
func (s *CronScheduler) Entries() int {
	return len(s.cron.Entries())
}

// Nop is a Scheduler for one-shot CLI invocations where no reminder
// process is running: scheduling reports "" (unavailable) and cancel is a
// no-op, mirroring a platform notifier without permission.
type Nop struct{}

var _ Scheduler = Nop{}

func (Nop) Schedule(habitID, name, clock string) (string, error) { return "", nil }
func (Nop) Cancel(handle string) error                           { return nil }
