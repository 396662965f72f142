package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/discgolf-planner/testutil"
)

// TestMain migrates the Postgres test database once when one is configured.
// SQLite tests migrate their own temp files.
func TestMain(m *testing.M) {
	if dsn := os.Getenv(testutil.PostgresEnv); dsn != "" {
		if err := testutil.MigratePostgres(context.Background(), dsn); err != nil {
			log.Fatalf("TestMain: %v", err)
		}
	}
	os.Exit(m.Run())
}
