package testhelper

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// init disables logging for tests unless explicitly enabled
func init() {
	if isTesting() {
		// Disable logging for all tests unless STAYLENS_TEST_LOG is set
		if os.Getenv("STAYLENS_TEST_LOG") == "" {
			zerolog.SetGlobalLevel(zerolog.Disabled)
		}
	}
}

// isTesting returns true if we're currently running tests
func isTesting() bool {
	return testing.Testing() ||
		os.Getenv("GO_TEST") != "" ||
		os.Args[0] == "go test" ||
		(len(os.Args) > 0 && os.Args[0] == "test") ||
		(len(os.Args) > 1 && os.Args[1] == "test")
}

// TestMain runs before all tests in this package
func TestMain(m *testing.M) {
	if os.Getenv("STAYLENS_TEST_LOG") == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	code := m.Run()
	os.Exit(code)
}
