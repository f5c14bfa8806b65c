// Package testsupport builds the respira binary for script tests.
package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce   sync.Once
	respiraPath string
	buildErr    error
)

// BuildRespira builds the respira binary once and returns its path.
func BuildRespira(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "respira-bin-")
		if err != nil {
			buildErr = err
			return
		}

		respiraPath = filepath.Join(binDir, "respira")
		cmd := exec.Command("go", "build", "-o", respiraPath, "./cmd/respira")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build respira: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return respiraPath
}

// SetupScriptEnv points RESPIRA at the binary and gives every script its own
// home and config directory.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("RESPIRA", BuildRespira(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	configDir := filepath.Join(homeDir, ".config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("XDG_CONFIG_HOME", configDir)
	env.Setenv("RESPIRA_LOG_LEVEL", "warn")
	return nil
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
