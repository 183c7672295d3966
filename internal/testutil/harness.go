package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/evmsim/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes every file into a fresh temporary directory and returns
// it. Names are relative paths; subdirectories are created as needed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output holds both the logs and the printed summary.
	Output string
	Err    error
	App    *app.App
	// Dir is the temporary directory the files were written to.
	Dir string
	// CSVPath is where the run series was written.
	CSVPath string
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, configure func(dir string, cfg *app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, configure)
}

// RunIntegrationTestWithContext writes the files to a temporary directory,
// lets configure fill in the app configuration (paths are relative to that
// directory) and runs the full application. The CSV output defaults to
// results.csv inside the directory.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, configure func(dir string, cfg *app.Config)) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	csvPath := filepath.Join(dir, "results.csv")

	cfg := &app.Config{
		LogLevel:  "debug",
		LogFormat: "text",
	}
	cfg.Overrides.Output = &csvPath
	if configure != nil {
		configure(dir, cfg)
	}
	if cfg.Overrides.Output != nil {
		csvPath = *cfg.Overrides.Output
	}

	out := &SafeBuffer{}
	testApp := app.NewApp(out, cfg)
	t.Cleanup(func() { _ = testApp.Close() })

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		runErr = testApp.Run(ctx)
	}()

	if os.Getenv("EVMSIM_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
	}

	return &HarnessResult{
		Output:  out.String(),
		Err:     runErr,
		App:     testApp,
		Dir:     dir,
		CSVPath: csvPath,
	}
}
