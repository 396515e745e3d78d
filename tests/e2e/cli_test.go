package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	binDir    string
	buildOnce sync.Once
	buildErr  error
)

// buildBinary builds the labctl binary once for all testscript tests.
func buildBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "labctl-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binDir = dir
		bin := filepath.Join(dir, "labctl")
		buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/labctl")
		if out, err := buildCmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("Failed to build CLI: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return filepath.Join(binDir, "labctl")
}

// TestCLI runs every testscript scenario in testdata/ against a freshly
// built labctl. The scenarios stick to the commands that work without a
// backend: compare, pipeline verify, check, render --file, password and
// version.
func TestCLI(t *testing.T) {
	bin := buildBinary(t)

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("PATH", filepath.Dir(bin)+string(os.PathListSeparator)+env.Getenv("PATH"))
			env.Setenv("LABCTL_BIN", bin)
			return nil
		},
	})
}

// TestMain acts as the main entrypoint. Testscript requires its own Main
// wrapper.
func TestMain(m *testing.M) {
	code := testscript.RunMain(m, nil)
	if binDir != "" {
		os.RemoveAll(binDir)
	}
	os.Exit(code)
}
