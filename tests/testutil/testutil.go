package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test immediately unless GO_ENV=test.
// The acceptance suites issue raw DELETEs between tests, so this guard
// keeps them away from development and production databases.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("tests must run with GO_ENV=test to prevent data loss (current GO_ENV=%q)", env)
	}
}

// MustSetTestEnvironment forces GO_ENV=test. Call it from TestMain or a
// suite's SetupSuite before anything reads configuration.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("failed to set GO_ENV=test: %v", err)
	}
}
