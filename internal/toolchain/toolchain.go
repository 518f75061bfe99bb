// Package toolchain checks that the companion language runtime is installed
// at the expected major.minor version.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"hadesctl/internal/config"
)

// Runner runs a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Runtime describes the detected interpreter.
type Runtime struct {
	Path    string
	Version string // as reported, e.g. "3.12.3"
}

// Checker resolves and inspects the configured runtime.
type Checker struct {
	cfg      config.RuntimeConfig
	lookPath LookPathFunc
	runner   Runner
	stat     func(string) (os.FileInfo, error)
}

// NewChecker returns a Checker for cfg.
func NewChecker(cfg config.RuntimeConfig, lookPath LookPathFunc, runner Runner) *Checker {
	return &Checker{cfg: cfg, lookPath: lookPath, runner: runner, stat: os.Stat}
}

// Detect finds the runtime on PATH and asks it for its version.
func (c *Checker) Detect(ctx context.Context) (Runtime, error) {
	path, err := c.lookPath(c.cfg.Command)
	if err != nil {
		return Runtime{}, fmt.Errorf("%s not found on PATH (%s): %w", c.cfg.Name, c.cfg.Command, err)
	}

	out, err := c.runner.Run(ctx, path, c.cfg.VersionArg...)
	if err != nil {
		return Runtime{Path: path}, fmt.Errorf("query %s version: %w", c.cfg.Command, err)
	}

	version, err := ParseVersion(string(out))
	if err != nil {
		return Runtime{Path: path}, err
	}
	return Runtime{Path: path, Version: version}, nil
}

// Verify detects the runtime and checks its major.minor against the configured
// version. The returned Runtime is populated as far as detection got.
func (c *Checker) Verify(ctx context.Context) (Runtime, error) {
	rt, err := c.Detect(ctx)
	if err != nil {
		return rt, err
	}
	if !MatchesMajorMinor(rt.Version, c.cfg.Version) {
		return rt, fmt.Errorf("%s version is %s, expected %s", c.cfg.Name, majorMinor(rt.Version), c.cfg.Version)
	}
	return rt, nil
}

// VirtualEnvReady reports whether the configured environment directory exists.
// An empty setting counts as ready.
func (c *Checker) VirtualEnvReady() bool {
	if c.cfg.VirtualEnv == "" {
		return true
	}
	info, err := c.stat(c.cfg.VirtualEnv)
	return err == nil && info.IsDir()
}

// ParseVersion extracts the first dotted version number from output such as
// "Python 3.12.3".
func ParseVersion(output string) (string, error) {
	m := versionPattern.FindString(strings.TrimSpace(output))
	if m == "" {
		return "", fmt.Errorf("no version number in %q", strings.TrimSpace(output))
	}
	return m, nil
}

// MatchesMajorMinor compares only the major and minor components.
func MatchesMajorMinor(actual, expected string) bool {
	a, e := canonical(actual), canonical(expected)
	if a == "" || e == "" {
		return false
	}
	return semver.MajorMinor(a) == semver.MajorMinor(e)
}

func canonical(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	return semver.Canonical("v" + v)
}

func majorMinor(v string) string {
	if mm := semver.MajorMinor(canonical(v)); mm != "" {
		return strings.TrimPrefix(mm, "v")
	}
	return v
}
