package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/krishi-mitra/internal/domain"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sched_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, key string, expires time.Time) {
	t.Helper()
	rec := &domain.Idempotency{
		ID: uuid.NewString(), Scope: "assistance", Key: key,
		ResourceID: uuid.NewString(), Status: 201, ExpiresAt: expires,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestPurgeIdempotency_DeletesOnlyExpired(t *testing.T) {
	db := newDB(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seed(t, db, "old", now.Add(-time.Minute))
	seed(t, db, "fresh", now.Add(time.Hour))

	var buf bytes.Buffer
	s, err := New(db, "*/30 * * * *", zerolog.New(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown() })
	s.now = func() time.Time { return now }

	before := testutil.ToFloat64(purgedTotal)
	n, err := s.PurgeIdempotency(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("purge = %d, %v; want 1, nil", n, err)
	}
	if got := testutil.ToFloat64(purgedTotal) - before; got != 1 {
		t.Fatalf("purged counter delta = %v; want 1", got)
	}

	var left []domain.Idempotency
	db.Find(&left)
	if len(left) != 1 || left[0].Key != "fresh" {
		t.Fatalf("remaining = %+v", left)
	}
	if !strings.Contains(buf.String(), "idempotency-purge") {
		t.Fatalf("expected job logs, got %q", buf.String())
	}
}

func TestNew_InvalidCron(t *testing.T) {
	if _, err := New(newDB(t), "not a cron", zerolog.Nop()); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

func TestPurgeIdempotency_DBError(t *testing.T) {
	db := newDB(t)
	s, err := New(db, "0 * * * *", zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown() })

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	if _, err := s.PurgeIdempotency(context.Background()); err == nil {
		t.Fatalf("expected error on closed db")
	}
}
