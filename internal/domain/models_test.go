package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(AssistanceRequest{}).TableName(): "assistance_requests",
		(KVEntry{}).TableName():           "kv_entries",
		(Idempotency{}).TableName():       "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_IndexesAndConstraints(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&AssistanceRequest{}, &KVEntry{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&AssistanceRequest{}, &KVEntry{}, &Idempotency{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Idempotency{}, "ux_scope_key") {
		t.Fatalf("expected composite index ux_scope_key")
	}

	// language check constraint
	bad := &AssistanceRequest{ID: "a1", Phone: "9999", Issue: "pests", Language: "fr"}
	if err := db.Create(bad).Error; err == nil {
		t.Fatalf("expected CHECK violation for language 'fr'")
	}
	ok := &AssistanceRequest{ID: "a2", Phone: "9999", Issue: "pests", Language: "ml"}
	if err := db.Create(ok).Error; err != nil {
		t.Fatalf("insert valid assistance: %v", err)
	}

	// (scope, key) is unique
	now := time.Now().UTC()
	first := &Idempotency{ID: "i1", Scope: "assistance", Key: "k", ResourceID: "a2", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("insert idempotency: %v", err)
	}
	dup := &Idempotency{ID: "i2", Scope: "assistance", Key: "k", ResourceID: "a3", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on (scope, key)")
	}
	other := &Idempotency{ID: "i3", Scope: "other", Key: "k", ResourceID: "x", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("same key in another scope should be allowed: %v", err)
	}

	// kv upsert by primary key
	if err := db.Save(&KVEntry{Key: "k1", Value: "a"}).Error; err != nil {
		t.Fatalf("save kv: %v", err)
	}
	if err := db.Save(&KVEntry{Key: "k1", Value: "b"}).Error; err != nil {
		t.Fatalf("overwrite kv: %v", err)
	}
	var got KVEntry
	if err := db.First(&got, "key = ?", "k1").Error; err != nil || got.Value != "b" {
		t.Fatalf("kv readback = %+v, %v", got, err)
	}
}

func TestConversationSnapshot_JSONShape(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	snap := ConversationSnapshot{
		ID:        "c1",
		CreatedAt: ts,
		Messages:  []ArchivedMessage{{ID: "m1", Role: RoleUser, Content: "hi", CreatedAt: ts}},
	}
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["createdAt"]; !ok {
		t.Fatalf("expected camelCase createdAt key, got %s", b)
	}
	msgs, _ := raw["messages"].([]any)
	if len(msgs) != 1 || msgs[0].(map[string]any)["role"] != "user" {
		t.Fatalf("unexpected messages: %s", b)
	}
}
