package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/history"
	historymock "github.com/riskibarqy/live-corners/internal/mocks/domain/history"
	"github.com/stretchr/testify/mock"
)

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() (string, error) { return f.id, nil }

func TestHistoryService_AppendAssignsID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := historymock.NewRepository(t)
	repo.
		On("Prepend", ctx, mock.MatchedBy(func(e history.Entry) bool { return e.ID() == "gen-1" && e["acao"] == "ENTRAR" }), 500).
		Return(12, nil).
		Once()

	svc := NewHistoryService(repo, fixedIDs{id: "gen-1"}, 0, nil)
	count, err := svc.Append(ctx, history.Entry{"acao": "ENTRAR"})
	if err != nil {
		t.Fatalf("append history: %v", err)
	}
	if count != 12 {
		t.Fatalf("unexpected count got=%d want=12", count)
	}
}

func TestHistoryService_AppendKeepsClientID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := historymock.NewRepository(t)
	repo.
		On("Prepend", ctx, mock.MatchedBy(func(e history.Entry) bool { return e.ID() == "client-7" }), 3).
		Return(1, nil).
		Once()

	svc := NewHistoryService(repo, fixedIDs{id: "unused"}, 3, nil)
	if _, err := svc.Append(ctx, history.Entry{"id": "client-7"}); err != nil {
		t.Fatalf("append history: %v", err)
	}
}

func TestHistoryService_AppendRejectsNil(t *testing.T) {
	t.Parallel()

	svc := NewHistoryService(historymock.NewRepository(t), nil, 0, nil)
	_, err := svc.Append(context.Background(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHistoryService_PatchNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	repo := historymock.NewRepository(t)
	repo.
		On("Patch", ctx, "missing", history.Entry{"result": "green"}, now).
		Return(history.ErrEntryNotFound).
		Once()

	svc := NewHistoryService(repo, nil, 0, nil)
	svc.now = func() time.Time { return now }

	err := svc.Patch(ctx, "missing", history.Entry{"result": "green"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryService_ListNeverNil(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := historymock.NewRepository(t)
	repo.On("List", ctx).Return(nil, nil).Once()

	svc := NewHistoryService(repo, nil, 0, nil)
	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}
