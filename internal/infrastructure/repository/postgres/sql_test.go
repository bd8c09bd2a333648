package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/history"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("pq: relation recommendation_history does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNewHistoryInsertModel(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	model, err := newHistoryInsertModel(history.Entry{"id": "e1", "acao": "ENTRAR"}, now)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	if !model.EntryID.Valid || model.EntryID.String != "e1" {
		t.Fatalf("unexpected entry id: %+v", model.EntryID)
	}
	if !model.CreatedAt.Equal(now) || !model.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %s %s", model.CreatedAt, model.UpdatedAt)
	}

	decoded, err := decodeEntry([]byte(model.Payload))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded["acao"] != "ENTRAR" || decoded.ID() != "e1" {
		t.Fatalf("unexpected decoded payload: %+v", decoded)
	}
}

func TestNewHistoryInsertModel_WithoutID(t *testing.T) {
	model, err := newHistoryInsertModel(history.Entry{"id": 42.0}, time.Now())
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	if model.EntryID.Valid {
		t.Fatalf("non-string id must not be indexed, got %+v", model.EntryID)
	}
}

func TestDecodeEntry(t *testing.T) {
	entry, err := decodeEntry(nil)
	if err != nil || len(entry) != 0 {
		t.Fatalf("expected empty entry, got %+v %v", entry, err)
	}
	if _, err := decodeEntry([]byte("[1,2]")); err == nil {
		t.Fatalf("expected error for non-object payload")
	}
}
