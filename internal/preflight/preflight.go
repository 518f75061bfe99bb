// Package preflight verifies the host prerequisites for start and rebuild:
// the language runtime, the docker CLI with a compose implementation, a
// reachable daemon and the compose file.
package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"hadesctl/internal/toolchain"
)

type Check struct {
	Name   string
	OK     bool
	Detail string
	Error  string
	// Advisory checks are reported but never fail the summary.
	Advisory bool
}

type Summary struct {
	Checks []Check
}

func (s *Summary) add(ok bool, name, detail string, err error) {
	c := Check{Name: name, OK: ok, Detail: detail}
	if err != nil {
		c.Error = err.Error()
	}
	s.Checks = append(s.Checks, c)
}

func (s *Summary) advise(ok bool, name, detail string) {
	s.Checks = append(s.Checks, Check{Name: name, OK: ok, Detail: detail, Advisory: true})
}

// OK reports whether every non-advisory check passed.
func (s Summary) OK() bool {
	return len(s.Failed()) == 0
}

// Failed returns the non-advisory checks that did not pass.
func (s Summary) Failed() []Check {
	var out []Check
	for _, c := range s.Checks {
		if !c.OK && !c.Advisory {
			out = append(out, c)
		}
	}
	return out
}

// Warnings returns advisory checks that did not pass.
func (s Summary) Warnings() []Check {
	var out []Check
	for _, c := range s.Checks {
		if !c.OK && c.Advisory {
			out = append(out, c)
		}
	}
	return out
}

// String renders one line per check.
func (c Check) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", c.Name, c.Detail)
	if c.Error != "" {
		fmt.Fprintf(&b, " (%s)", c.Error)
	}
	return b.String()
}

// RuntimeVerifier is satisfied by *toolchain.Checker.
type RuntimeVerifier interface {
	Verify(ctx context.Context) (toolchain.Runtime, error)
	VirtualEnvReady() bool
}

// ComposeResolver is satisfied by *compose.Controller.
type ComposeResolver interface {
	ComposeCommand(ctx context.Context) ([]string, error)
}

// Pinger is satisfied by *dockerutil.Engine.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators Run consults. A nil Daemon means the docker
// client could not be constructed; DaemonErr carries why.
type Deps struct {
	Runtime     RuntimeVerifier
	RuntimeName string
	VirtualEnv  string
	LookPath    func(string) (string, error)
	Compose     ComposeResolver
	Daemon      Pinger
	DaemonErr   error
	ComposeFile string
	Stat        func(string) (os.FileInfo, error)
}

// Run executes every check and returns the full summary; it never stops at
// the first failure so the operator sees everything that needs fixing.
func Run(ctx context.Context, d Deps) Summary {
	var s Summary
	stat := d.Stat
	if stat == nil {
		stat = os.Stat
	}

	if rt, err := d.Runtime.Verify(ctx); err != nil {
		s.add(false, "runtime", fmt.Sprintf("%s not usable", d.RuntimeName), err)
	} else {
		s.add(true, "runtime", fmt.Sprintf("%s %s at %s", d.RuntimeName, rt.Version, rt.Path), nil)
	}
	if d.VirtualEnv != "" {
		if d.Runtime.VirtualEnvReady() {
			s.advise(true, "virtualenv", fmt.Sprintf("%s present", d.VirtualEnv))
		} else {
			s.advise(false, "virtualenv", fmt.Sprintf("%s not found; create it before running project code", d.VirtualEnv))
		}
	}

	if _, err := d.LookPath("docker"); err != nil {
		s.add(false, "docker", "docker not found", err)
	} else {
		s.add(true, "docker", "docker found", nil)
	}

	if base, err := d.Compose.ComposeCommand(ctx); err != nil {
		s.add(false, "docker-compose", "compose not available", err)
	} else {
		s.add(true, "docker-compose", strings.Join(base, " ")+" available", nil)
	}

	switch {
	case d.Daemon == nil:
		s.add(false, "docker-daemon", "cannot create docker client", d.DaemonErr)
	default:
		if err := d.Daemon.Ping(ctx); err != nil {
			s.add(false, "docker-daemon", "daemon not reachable", err)
		} else {
			s.add(true, "docker-daemon", "daemon reachable", nil)
		}
	}

	if info, err := stat(d.ComposeFile); err != nil {
		s.add(false, "compose-file", fmt.Sprintf("%s not found", d.ComposeFile), err)
	} else if info.IsDir() {
		s.add(false, "compose-file", fmt.Sprintf("%s is a directory", d.ComposeFile), nil)
	} else {
		s.add(true, "compose-file", fmt.Sprintf("%s present", d.ComposeFile), nil)
	}

	return s
}
