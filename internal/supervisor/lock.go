package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"hiddengems/internal/logging"
)

// lockRetryDelay is how often a blocked launcher retries the launch lock.
const lockRetryDelay = 100 * time.Millisecond

// lockSlack covers probe latency on top of the readiness budget.
const lockSlack = 2 * time.Second

// launchGuard serializes launches across launcher instances sharing a state dir.
// A zero guard holds nothing.
type launchGuard struct {
	lock   *flock.Flock
	waited bool
}

func (g launchGuard) release() {
	if g.lock == nil {
		return
	}
	_ = g.lock.Unlock()
}

// acquireLaunchGuard takes the launch lock. When another instance holds it the
// call blocks until that launch settles, and the caller should probe again.
// Lock problems are logged and supervision proceeds unguarded.
func (s *Supervisor) acquireLaunchGuard(ctx context.Context) launchGuard {
	path := strings.TrimSpace(s.cfg.LockPath)
	if path == "" {
		return launchGuard{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.warnLock(path, err)
		return launchGuard{}
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		s.warnLock(path, err)
		return launchGuard{}
	}
	if ok {
		return launchGuard{lock: lock}
	}

	s.logger.Info("another launcher is starting the backend; waiting", logging.String("lock", path))
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.MaxWait()+lockSlack)
	defer cancel()
	ok, err = lock.TryLockContext(waitCtx, lockRetryDelay)
	if err != nil || !ok {
		if err == nil {
			err = waitCtx.Err()
		}
		s.warnLock(path, err)
		return launchGuard{waited: true}
	}
	return launchGuard{lock: lock, waited: true}
}

func (s *Supervisor) warnLock(path string, err error) {
	logging.WarnWithContext(s.logger, "launch lock unavailable; continuing without it", "launch_lock_failed",
		logging.String("lock", path),
		logging.Error(err),
		logging.Hint("check permissions on the state directory"),
		logging.Impact("two launchers may start the backend at once"),
	)
}

// LaunchInProgress reports whether another launcher currently holds the
// launch lock at path.
func LaunchInProgress(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return false, err
	}
	if ok {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}
