package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const filePrefix = "financas_"

// Scheduler copies the sqlite database file on a cron schedule and
// prunes old copies beyond the configured retention.
type Scheduler struct {
	cron   *cron.Cron
	dbPath string
	dir    string
	keep   int
	log    *logrus.Logger
}

// NewScheduler builds a scheduler for the given cron expression. An
// empty schedule disables backups.
func NewScheduler(dbPath, dir, schedule string, keep int, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		dbPath: dbPath,
		dir:    dir,
		keep:   keep,
		log:    log,
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	if schedule == "" {
		return s, nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunOnce(); err != nil {
			log.WithError(err).Error("scheduled backup failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running scheduled backups. No-op when disabled.
func (s *Scheduler) Start() {
	if s.cron != nil {
		s.cron.Start()
		s.log.WithField("dir", s.dir).Info("backup scheduler started")
	}
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce copies the database file into the backup directory and
// prunes old copies.
func (s *Scheduler) RunOnce() error {
	name := fmt.Sprintf("%s%s.db", filePrefix, time.Now().Format("20060102_150405"))
	dst := filepath.Join(s.dir, name)

	if err := copyFile(s.dbPath, dst); err != nil {
		return fmt.Errorf("copy database: %w", err)
	}
	s.log.WithField("file", dst).Info("backup written")

	if err := s.prune(); err != nil {
		return fmt.Errorf("prune backups: %w", err)
	}
	return nil
}

// prune removes the oldest backups beyond the retention count. The
// timestamped names sort chronologically.
func (s *Scheduler) prune() error {
	if s.keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), filePrefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= s.keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-s.keep] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return err
		}
		s.log.WithField("file", name).Info("old backup removed")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
