package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"hiddengems/internal/logging"
	"hiddengems/internal/netprobe"
	"hiddengems/internal/process"
)

// Supervisor orchestrates probing, launching and stopping the backend.
type Supervisor struct {
	cfg      BackendConfig
	logger   *slog.Logger
	probe    netprobe.ProbeFunc
	resolver process.Resolver
	launcher process.Launcher
	store    *process.Store
	environ  func() []string

	mu    sync.Mutex
	state State
}

// Option customizes a Supervisor.
type Option func(*Supervisor)

// WithProbe replaces the TCP probe.
func WithProbe(probe netprobe.ProbeFunc) Option {
	return func(s *Supervisor) {
		if probe != nil {
			s.probe = probe
		}
	}
}

// WithLauncher replaces the process launcher.
func WithLauncher(launcher process.Launcher) Option {
	return func(s *Supervisor) {
		if launcher != nil {
			s.launcher = launcher
		}
	}
}

// WithResolver replaces the executable resolver.
func WithResolver(resolver process.Resolver) Option {
	return func(s *Supervisor) {
		s.resolver = resolver
	}
}

// WithStore shares an existing handle store.
func WithStore(store *process.Store) Option {
	return func(s *Supervisor) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEnviron replaces the parent environment the backend inherits.
func WithEnviron(environ func() []string) Option {
	return func(s *Supervisor) {
		if environ != nil {
			s.environ = environ
		}
	}
}

// New constructs a Supervisor for cfg.
func New(cfg BackendConfig, logger *slog.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "supervisor"),
		probe:    netprobe.Probe,
		resolver: process.NewResolver(cfg.Candidates),
		launcher: process.ExecLauncher{},
		store:    &process.Store{},
		environ:  os.Environ,
		state:    StateNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the most recent step of the supervision sequence.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Supervisor) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.logger.Debug("supervisor state", logging.String("state", string(state)))
}

// Handle returns the launched backend, if this supervisor started one.
func (s *Supervisor) Handle() (process.Handle, bool) {
	return s.store.Peek()
}

// Address is the host:port the backend is expected on.
func (s *Supervisor) Address() string {
	return netprobe.Address(s.cfg.Host, s.cfg.Port)
}

// EnsureRunning makes sure the backend is listening, launching it when
// nothing answers. It never panics and never aborts the caller; failures are
// carried in Result.Err. Calling it while the backend is up never spawns.
func (s *Supervisor) EnsureRunning(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	finish := func(r Result) Result {
		r.Elapsed = time.Since(start)
		s.setState(r.State)
		s.logResult(r)
		return r
	}

	s.setState(StateProbing)
	if s.probe(ctx, s.cfg.Host, s.cfg.Port, s.cfg.ProbeTimeout) {
		return finish(Result{State: StateAlreadyRunning, Attempts: 1})
	}
	s.logger.Info("backend not running, launching", logging.Address(s.Address()))

	guard := s.acquireLaunchGuard(ctx)
	defer guard.release()
	if guard.waited && s.probe(ctx, s.cfg.Host, s.cfg.Port, s.cfg.ProbeTimeout) {
		return finish(Result{State: StateAlreadyRunning, Attempts: 2})
	}

	executable, err := s.resolver.Resolve(s.cfg.BaseDir)
	if err != nil {
		return finish(Result{State: StateNotFound, Err: fmt.Errorf("%w: %w", ErrExecutableNotFound, err)})
	}

	s.setState(StateLaunching)
	handle, err := s.launch(executable)
	if err != nil {
		return finish(Result{State: StateSpawnFailed, Executable: executable, Err: fmt.Errorf("%w: %w", ErrSpawnFailed, err)})
	}
	if prev := s.store.Put(handle); prev != nil {
		logging.WarnWithContext(s.logger, "replaced a previously stored backend handle", "backend_handle_replaced",
			logging.Int("previous_pid", prev.PID()),
			logging.PID(handle.PID()),
			logging.Impact("the previous backend will not be stopped on exit"),
		)
	}
	s.logger.Info("backend process started",
		logging.PID(handle.PID()),
		logging.String("executable", executable),
		logging.String("dir", s.cfg.BaseDir),
	)

	s.setState(StateWaitingReady)
	outcome, attempts := netprobe.AwaitReady(ctx, netprobe.Poll{
		Host:         s.cfg.Host,
		Port:         s.cfg.Port,
		Interval:     s.cfg.PollInterval,
		MaxAttempts:  s.cfg.MaxAttempts,
		ProbeTimeout: s.cfg.ProbeTimeout,
		Exited:       handle.Exited(),
		Probe:        s.probe,
		OnAttempt: func(attempt int) {
			s.logger.Debug("backend not ready yet",
				logging.Int("attempt", attempt),
				logging.Int("max_attempts", s.cfg.MaxAttempts),
			)
		},
	})

	result := Result{Launched: true, PID: handle.PID(), Executable: executable, Attempts: attempts}
	switch outcome {
	case netprobe.Ready:
		result.State = StateReady
	case netprobe.Exited:
		result.State = StateExited
		result.Err = fmt.Errorf("%w (pid %d, %s, see %s)", ErrBackendExited, handle.PID(), exitStatus(handle), s.logHint())
	default:
		result.State = StateTimedOut
		result.Err = fmt.Errorf("%w: %s not reachable after %d attempts", ErrReadinessTimedOut, s.Address(), attempts)
	}
	return finish(result)
}

func (s *Supervisor) launch(executable string) (process.Handle, error) {
	spec := process.Spec{Dir: s.cfg.BaseDir, Env: s.backendEnv()}

	if path := strings.TrimSpace(s.cfg.LogPath); path != "" {
		s.rotateLog(path)
		logFile, err := openBackendLog(path)
		if err != nil {
			logging.WarnWithContext(s.logger, "backend log unavailable; output discarded", "backend_log_unavailable",
				logging.String("path", path),
				logging.Error(err),
				logging.Hint("check permissions on the log directory"),
				logging.Impact("backend output will not be captured"),
			)
		} else {
			// The child holds its own descriptor once started.
			defer logFile.Close()
			spec.Stdout = logFile
			spec.Stderr = logFile
		}
	}

	return s.launcher.Launch(executable, s.cfg.Args, spec)
}

func (s *Supervisor) rotateLog(path string) {
	rotated, err := logging.RotateLog(path, s.cfg.LogMaxBytes)
	if err != nil {
		logging.WarnWithContext(s.logger, "backend log rotation failed; appending", "backend_log_rotate_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.Hint("check permissions on the log directory"),
			logging.Impact("backend.log keeps growing"),
		)
		return
	}
	if rotated != "" {
		s.logger.Info("backend log rotated", logging.String("path", rotated), logging.Event("backend_log_rotated"))
	}
}

func (s *Supervisor) backendEnv() []string {
	parent := s.environ()
	values, loaded, err := process.LoadEnvFiles(s.cfg.EnvFiles)
	if err != nil {
		logging.WarnWithContext(s.logger, "env file unreadable; backend inherits launcher environment only", "backend_env_file_failed",
			logging.Error(err),
			logging.Hint("fix the dotenv syntax or remove the file"),
			logging.Impact("backend settings from env files are missing"),
		)
		values = nil
	}
	if len(loaded) > 0 {
		s.logger.Debug("env files loaded", logging.Strings("files", loaded))
	}
	env := process.MergeEnv(parent, values)
	if missing := process.MissingKeys(env, s.cfg.RequiredEnv); len(missing) > 0 {
		logging.WarnWithContext(s.logger, "backend environment incomplete", "backend_env_missing",
			logging.Strings("missing", missing),
			logging.Hint("set the keys in the shell or in one of the env files"),
			logging.Impact("backend features relying on these keys will fail"),
		)
	}
	return env
}

func (s *Supervisor) logHint() string {
	if strings.TrimSpace(s.cfg.LogPath) == "" {
		return "backend output"
	}
	return s.cfg.LogPath
}

func (s *Supervisor) logResult(r Result) {
	attrs := []logging.Attr{
		logging.String("state", string(r.State)),
		logging.Address(s.Address()),
		logging.Duration("elapsed", r.Elapsed.Round(time.Millisecond)),
	}
	if r.PID > 0 {
		attrs = append(attrs, logging.PID(r.PID))
	}
	if r.OK() {
		attrs = append(attrs, logging.Event("backend_"+string(r.State)))
		s.logger.Info(r.Message(), logging.Args(attrs...)...)
		return
	}

	attrs = append(attrs, logging.Error(r.Err), logging.Impact("window opens without a reachable backend"))
	switch {
	case errors.Is(r.Err, ErrExecutableNotFound):
		attrs = append(attrs, logging.Hint("create the virtualenv in the base directory or set backend.candidates"))
	case errors.Is(r.Err, ErrSpawnFailed):
		attrs = append(attrs, logging.Hint("check the executable's permissions"))
	case errors.Is(r.Err, ErrBackendExited):
		attrs = append(attrs, logging.Hint("inspect "+s.logHint()))
	default:
		attrs = append(attrs, logging.Hint("raise backend.max_attempts or inspect "+s.logHint()))
	}
	logging.WarnWithContext(s.logger, "backend unavailable", "backend_"+string(r.State), attrs...)
}

// Teardown stops the backend if this supervisor launched it. It is safe to
// call any number of times; only the first call after a launch acts.
// Failures are logged, never returned to the caller as errors.
func (s *Supervisor) Teardown() TeardownResult {
	handle, ok := s.store.Take()
	if !ok {
		s.logger.Debug("no launched backend to stop")
		return TeardownResult{}
	}

	pid := handle.PID()
	s.logger.Info("stopping backend", logging.PID(pid), logging.Duration("grace", s.cfg.StopGrace))
	outcome, err := handle.Terminate(s.cfg.StopGrace)
	if err != nil {
		logging.WarnWithContext(s.logger, "backend stop failed", "backend_stop_failed",
			logging.PID(pid),
			logging.Error(err),
			logging.Hint(fmt.Sprintf("kill process %d manually", pid)),
			logging.Impact("backend may keep the port bound"),
		)
		return TeardownResult{Stopped: false, PID: pid, Outcome: string(outcome), Err: err}
	}
	s.logger.Info("backend stopped",
		logging.PID(pid),
		logging.String("outcome", string(outcome)),
		logging.Event("backend_stopped"),
	)
	return TeardownResult{Stopped: true, PID: pid, Outcome: string(outcome)}
}

func exitStatus(handle process.Handle) string {
	if err := handle.ExitErr(); err != nil {
		return err.Error()
	}
	return "exit status 0"
}

func openBackendLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

