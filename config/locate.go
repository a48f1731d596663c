package config

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const exeName = "es.exe"

// altInstance is the named instance used by Everything 1.5 alpha builds.
const altInstance = "1.5a"

const (
	verifyTimeout  = 5 * time.Second
	connectTimeout = 10 * time.Second
)

// runResult captures one probe invocation of the candidate executable.
type runResult struct {
	stdout string
	stderr string
	exit   int
}

// Locator resolves a verified es.exe path and the live engine instance.
// Every probe it performs goes through the run/isFile/isDir/lookPath and
// registry seams so the fallback chain is testable without a real
// Everything installation.
type Locator struct {
	log        *slog.Logger
	run        func(timeout time.Duration, path string, args ...string) (runResult, error)
	lookPath   func(name string) (string, error)
	isFile     func(path string) bool
	isDir      func(path string) bool
	registry   func(verify func(string) bool) string
	searchDirs []string
}

func NewLocator(logger *slog.Logger) *Locator {
	return &Locator{
		log:        logger,
		run:        runProbe,
		lookPath:   exec.LookPath,
		isFile:     isRegularFile,
		isDir:      isDirectory,
		registry:   registrySearch,
		searchDirs: defaultSearchDirs(),
	}
}

// Find resolves a verified executable path, trying the explicit override,
// the shell search path, conventional install directories, and the
// registry, in that order. Returns "" when every source fails.
func (l *Locator) Find(override string) string {
	if override != "" {
		if p := l.checkOverride(override); p != "" {
			return p
		}
		l.log.Warn("configured es.exe path not valid, continuing search", "path", override)
	}

	for _, name := range []string{"es", "es.exe"} {
		found, err := l.lookPath(name)
		if err == nil && l.Verify(found) {
			return found
		}
	}

	for _, dir := range l.searchDirs {
		candidate := filepath.Join(dir, exeName)
		if l.isFile(candidate) && l.Verify(candidate) {
			return candidate
		}
	}

	return l.registry(l.Verify)
}

func (l *Locator) checkOverride(p string) string {
	if l.isFile(p) {
		if strings.EqualFold(baseOf(p), exeName) && l.Verify(p) {
			return p
		}
		return ""
	}
	if l.isDir(p) {
		candidate := filepath.Join(p, exeName)
		if l.isFile(candidate) && l.Verify(candidate) {
			return candidate
		}
	}
	return ""
}

// Verify confirms path is genuinely voidtools Everything's es.exe and not
// an unrelated binary that happens to share the name. The version query
// must produce at least one digit; the -version fallback must name the
// product.
func (l *Locator) Verify(path string) bool {
	res, err := l.run(verifyTimeout, path, "-get-everything-version")
	if err == nil {
		out := strings.TrimSpace(res.stdout)
		if out != "" && containsDigit(out) {
			return true
		}
	}

	res, err = l.run(verifyTimeout, path, "-version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(res.stdout), "everything")
}

// DetectInstance determines which Everything instance is live. An empty
// return means "use the default instance" -- either because it answered,
// or because neither did and the connectivity test downstream will
// surface the failure.
func (l *Locator) DetectInstance(path string) string {
	res, err := l.run(verifyTimeout, path, "-get-everything-version")
	if err == nil && res.exit == 0 && strings.TrimSpace(res.stdout) != "" {
		return ""
	}

	res, err = l.run(verifyTimeout, path, "-instance", altInstance, "-get-everything-version")
	if err == nil && res.exit == 0 && strings.TrimSpace(res.stdout) != "" {
		return altInstance
	}

	return ""
}

// TestConnection verifies the engine answers through the resolved
// (path, instance) pair. Falls back to a minimal single-result listing
// when the version query fails.
func (l *Locator) TestConnection(path, instance string) (bool, string) {
	base := []string{}
	if instance != "" {
		base = append(base, "-instance", instance)
	}

	res, err := l.run(connectTimeout, path, append(base, "-get-everything-version")...)
	if err == nil && res.exit == 0 && strings.TrimSpace(res.stdout) != "" {
		return true, "Everything v" + strings.TrimSpace(res.stdout)
	}

	res, err = l.run(connectTimeout, path, append(base, "-n", "1", "*.txt")...)
	switch {
	case err == nil && res.exit == 0:
		return true, "Everything connected (version unknown)"
	case errors.Is(err, context.DeadlineExceeded):
		return false, "Connection timed out"
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, exec.ErrNotFound):
		return false, "es.exe not found at " + path
	case err != nil:
		return false, err.Error()
	}

	msg := strings.TrimSpace(res.stderr)
	if msg == "" {
		msg = strings.TrimSpace(res.stdout)
	}
	if msg == "" {
		msg = "Unknown error"
	}
	return false, msg
}

func runProbe(timeout time.Duration, path string, args ...string) (runResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := runResult{stdout: stdout.String(), stderr: stderr.String()}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, context.DeadlineExceeded
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.exit = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

// baseOf splits on either separator: override paths are usually
// backslash-separated whatever the host.
func baseOf(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// defaultSearchDirs lists the conventional install locations probed after
// PATH. Entries depending on unset environment variables are dropped.
func defaultSearchDirs() []string {
	localAppData := os.Getenv("LOCALAPPDATA")
	userProfile := os.Getenv("USERPROFILE")
	programData := os.Getenv("PROGRAMDATA")

	dirs := make([]string, 0, 11)
	appendIfSet := func(root string, parts ...string) {
		if root == "" {
			return
		}
		dirs = append(dirs, filepath.Join(append([]string{root}, parts...)...))
	}

	appendIfSet(localAppData, "Microsoft", "WindowsApps")
	dirs = append(dirs,
		`C:\Program Files\Everything`,
		`C:\Program Files (x86)\Everything`,
		`C:\Program Files\Everything 1.5a`,
		`C:\Program Files (x86)\Everything 1.5a`,
	)
	appendIfSet(localAppData, "Everything")
	appendIfSet(userProfile, "Everything")
	appendIfSet(programData, "Everything")
	appendIfSet(userProfile, "scoop", "shims")
	appendIfSet(userProfile, "scoop", "apps", "everything", "current")
	appendIfSet(programData, "chocolatey", "bin")

	return dirs
}
