package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pyboot-dev/pyboot/internal/platform"
	"github.com/pyboot-dev/pyboot/internal/signature"
)

// ErrProvision indicates the environment tool failed in a way the fallback
// could not recover: both modes failed, the failure did not match a known
// signature, or the tool could not be started at all.
var ErrProvision = errors.New("environment provisioning failed")

// Dir is the virtual environment directory created under the project root.
const Dir = ".venv"

// Mode identifies how the environment was ultimately created.
type Mode string

const (
	// ModeFast is uv's default hard-link based creation.
	ModeFast Mode = "fast"
	// ModeSafeFallback is uv forced into copy semantics via UV_LINK_MODE.
	ModeSafeFallback Mode = "copy"
	// ModeStdlib is python -m venv, used when uv is not installed.
	ModeStdlib Mode = "stdlib"
)

// Result reports the mode that succeeded plus any non-fatal warnings.
type Result struct {
	Mode     Mode
	Warnings []string
}

// Runner executes one external command with its output fully captured.
// exitCode is meaningful only when err is nil; err reports spawn failures,
// not non-zero exits.
type Runner interface {
	Run(ctx context.Context, dir string, env []string, name string, args ...string) (combined string, exitCode int, err error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if env != nil {
		cmd.Env = env
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), -1, err
	}
	return string(out), 0, nil
}

// Provisioner creates the project virtual environment. The function fields
// are seams for tests; zero values use the real implementations.
type Provisioner struct {
	Signatures signature.Table

	Runner     Runner
	LookPath   func(file string) (string, error)
	FindPython func() (string, error)
}

// New returns a Provisioner using the given signature table.
func New(sigs signature.Table) *Provisioner {
	return &Provisioner{Signatures: sigs}
}

func (p *Provisioner) runner() Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return execRunner{}
}

func (p *Provisioner) lookPath(file string) (string, error) {
	if p.LookPath != nil {
		return p.LookPath(file)
	}
	return exec.LookPath(file)
}

func (p *Provisioner) findPython() (string, error) {
	if p.FindPython != nil {
		return p.FindPython()
	}
	return platform.FindPython()
}

// Provision creates .venv under root. With uv on PATH it attempts the fast
// hard-link mode first; if that fails with a recognized hard-link signature
// it retries exactly once with UV_LINK_MODE=copy. Without uv it falls back
// to the stdlib venv module. At most two external invocations are issued
// per call.
//
// On any failure the partially created .venv is removed, so a caller
// rolling back the surrounding scaffold finds the root in the state the
// writer left it.
func (p *Provisioner) Provision(ctx context.Context, root, pythonVersion string) (*Result, error) {
	uvBin, err := p.lookPath("uv")
	if err != nil {
		return p.provisionStdlib(ctx, root, pythonVersion)
	}

	args := []string{"venv", Dir}
	if pythonVersion != "" {
		args = append(args, "--python", pythonVersion)
	} else if py, err := p.findPython(); err == nil {
		args = append(args, "--python", py)
	}

	fastOut, fastCode, err := p.runner().Run(ctx, root, nil, uvBin, args...)
	if err != nil {
		p.cleanup(root)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("environment creation interrupted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: running uv: %v", ErrProvision, err)
	}
	if fastCode == 0 {
		return &Result{Mode: ModeFast}, nil
	}
	if ctx.Err() != nil {
		p.cleanup(root)
		return nil, fmt.Errorf("environment creation interrupted: %w", ctx.Err())
	}

	if !p.Signatures.Match(fastOut) {
		p.cleanup(root)
		return nil, fmt.Errorf("%w: uv exited %d: %s", ErrProvision, fastCode, strings.TrimSpace(fastOut))
	}

	// Recognized hard-link failure: retry once with copy semantics.
	env := setEnv(os.Environ(), "UV_LINK_MODE", "copy")
	copyOut, copyCode, err := p.runner().Run(ctx, root, env, uvBin, args...)
	if err != nil {
		p.cleanup(root)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("environment creation interrupted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: running uv in copy mode: %v", ErrProvision, err)
	}
	if copyCode != 0 {
		p.cleanup(root)
		return nil, fmt.Errorf("%w: uv failed in both link modes\nfast mode: %s\ncopy mode: %s",
			ErrProvision, strings.TrimSpace(fastOut), strings.TrimSpace(copyOut))
	}

	return &Result{Mode: ModeSafeFallback}, nil
}

// provisionStdlib creates the environment with python -m venv. The requested
// interpreter version cannot be honored without uv, so it is reported as a
// warning rather than an error.
func (p *Provisioner) provisionStdlib(ctx context.Context, root, pythonVersion string) (*Result, error) {
	res := &Result{Mode: ModeStdlib}
	if pythonVersion != "" {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("--python %s requires uv; using the default interpreter instead", pythonVersion))
	}

	py, err := p.findPython()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvision, err)
	}

	out, code, err := p.runner().Run(ctx, root, nil, py, "-m", "venv", Dir)
	if err != nil {
		p.cleanup(root)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("environment creation interrupted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: running %s -m venv: %v", ErrProvision, py, err)
	}
	if code != 0 {
		p.cleanup(root)
		return nil, fmt.Errorf("%w: %s -m venv exited %d: %s", ErrProvision, py, code, strings.TrimSpace(out))
	}

	return res, nil
}

// cleanup best-effort removes a partially created environment so rollback of
// the surrounding scaffold is not blocked by a non-empty root.
func (p *Provisioner) cleanup(root string) {
	_ = os.RemoveAll(filepath.Join(root, Dir))
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
