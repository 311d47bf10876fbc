package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		merchant_id TEXT PRIMARY KEY,
		legal_name TEXT,
		dba TEXT,
		current_processor TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProcessorRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE processor_records (
		id TEXT PRIMARY KEY,
		processor_name TEXT NOT NULL,
		month TEXT NOT NULL,
		merchant_id TEXT NOT NULL,
		merchant_name TEXT,
		net TEXT NOT NULL,
		sales_volume TEXT,
		transaction_count INTEGER,
		group_code TEXT,
		branch_id TEXT,
		created_at DATETIME
	);`)
}

func createRoleTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE roles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE(name, type)
	);`)
}

func createAssignmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE assignments (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		role_id TEXT NOT NULL,
		month TEXT NOT NULL,
		percentage REAL NOT NULL,
		role_type TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(merchant_id, role_id, month)
	);`)
}

func createAuditIssueTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE audit_issues (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		month TEXT NOT NULL,
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		resolved_at DATETIME
	);`)
}
