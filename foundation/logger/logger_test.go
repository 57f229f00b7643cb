package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/superfeelapi/goEagiFraud/foundation/logger"
)

func TestNewWritesToGroupDirectory(t *testing.T) {
	dir := t.TempDir()

	log, err := logger.New(dir, "securebank", "agent")
	if err != nil {
		t.Fatal(err)
	}
	log.Infow("startup", "status", "ok")
	log.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "securebank", "agent.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"msg":"startup"`) || !strings.Contains(string(b), `"actor":"agent"`) {
		t.Fatalf("unexpected log contents: %s", b)
	}
}
