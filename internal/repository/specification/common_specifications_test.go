package specification

import (
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestForUpdateAddsLockingClause(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open returned error: %v", err)
	}

	tx := ForUpdate{}.Apply(db.Session(&gorm.Session{DryRun: true}))

	locking, ok := tx.Statement.Clauses["FOR"]
	if !ok {
		t.Fatal("ForUpdate did not register a locking clause")
	}
	if locking.Name != "FOR" {
		t.Errorf("clause name = %q, want FOR", locking.Name)
	}
}
