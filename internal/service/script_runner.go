package service

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrScriptNotFound = errors.New("script not found")
	ErrScriptBusy     = errors.New("script is already running")
	ErrScriptTimeout  = errors.New("script timed out")
	ErrScriptFailed   = errors.New("script exited with a non-zero status")
	ErrScriptStart    = errors.New("script could not be started")
)

// MaxScriptOutput caps each captured stream.
const MaxScriptOutput = 64 << 10

// Script is an allow-listed command. Args are fixed; callers only pick a name.
type Script struct {
	Name        string
	Description string
	Args        []string
}

// DefaultScripts are the maintenance subcommands of the server binary.
func DefaultScripts() []Script {
	return []Script{
		{Name: "seed", Description: "Insert roles, the admin user, settings and sample content (idempotent)", Args: []string{"seed"}},
		{Name: "migrate", Description: "Apply pending database migrations", Args: []string{"migrate", "up"}},
		{Name: "cache-warm", Description: "Precompute public pages into the Redis cache", Args: []string{"cache", "warm"}},
		{Name: "cache-purge", Description: "Delete every cached public page", Args: []string{"cache", "purge"}},
	}
}

type ScriptResult struct {
	Name            string
	Command         string
	ExitCode        int
	Stdout          string
	Stderr          string
	StdoutTruncated bool
	StderrTruncated bool
	TimedOut        bool
	StartedAt       time.Time
	Duration        time.Duration
}

type ScriptRunner struct {
	binary  string
	timeout time.Duration
	log     *logrus.Logger
	scripts map[string]Script

	// per-script mutex; TryLock rejects overlapping runs of the same script
	running sync.Map // map[string]*sync.Mutex
}

func NewScriptRunner(binary string, timeout time.Duration, scripts []Script, log *logrus.Logger) *ScriptRunner {
	byName := make(map[string]Script, len(scripts))
	for _, s := range scripts {
		byName[s.Name] = s
	}
	return &ScriptRunner{
		binary:  binary,
		timeout: timeout,
		log:     log,
		scripts: byName,
	}
}

// Scripts returns the allow-list sorted by name.
func (r *ScriptRunner) Scripts() []Script {
	list := make([]Script, 0, len(r.scripts))
	for _, s := range r.scripts {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Run executes the named script. On ErrScriptTimeout, ErrScriptFailed and
// ErrScriptStart the result is returned alongside the error.
func (r *ScriptRunner) Run(ctx context.Context, name string) (*ScriptResult, error) {
	script, ok := r.scripts[name]
	if !ok {
		return nil, ErrScriptNotFound
	}

	m, _ := r.running.LoadOrStore(name, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, ErrScriptBusy
	}
	defer mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	stdout := &cappedBuffer{limit: MaxScriptOutput}
	stderr := &cappedBuffer{limit: MaxScriptOutput}

	cmd := exec.CommandContext(runCtx, r.binary, script.Args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Children that keep the pipes open must not block Wait past the timeout.
	cmd.WaitDelay = 2 * time.Second

	result := &ScriptResult{
		Name:      name,
		Command:   strings.Join(append([]string{r.binary}, script.Args...), " "),
		StartedAt: time.Now(),
	}

	r.log.WithField("script", name).Info("Running maintenance script")
	err := cmd.Run()
	result.Duration = time.Since(result.StartedAt)
	result.Stdout, result.StdoutTruncated = stdout.String(), stdout.truncated
	result.Stderr, result.StderrTruncated = stderr.String(), stderr.truncated
	result.ExitCode = -1
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		r.log.Warnf("Script %s timed out after %v", name, r.timeout)
		return result, ErrScriptTimeout
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.log.Warnf("Script %s exited with code %d", name, result.ExitCode)
			return result, ErrScriptFailed
		}
		r.log.Warnf("Failed to start script %s: %+v", name, err)
		if result.Stderr != "" {
			result.Stderr += "\n"
		}
		result.Stderr += err.Error()
		return result, fmt.Errorf("%w: %v", ErrScriptStart, err)
	}

	r.log.WithField("script", name).WithField("duration", result.Duration.String()).Info("Maintenance script finished")
	return result, nil
}

// cappedBuffer keeps the first limit bytes and silently drops the rest.
type cappedBuffer struct {
	buf       []byte
	limit     int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.limit - len(b.buf)
	if room <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}
		return len(p), nil
	}
	if len(p) > room {
		b.buf = append(b.buf, p[:room]...)
		b.truncated = true
		return len(p), nil
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return string(b.buf)
}
