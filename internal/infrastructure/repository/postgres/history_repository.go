package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/live-corners/internal/domain/history"
	qb "github.com/riskibarqy/live-corners/internal/platform/querybuilder"
)

// HistoryRepository stores history entries as jsonb rows; seq orders them
// newest first.
type HistoryRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

func (r *HistoryRepository) List(ctx context.Context) ([]history.Entry, error) {
	query, args, err := qb.Select("seq", "payload").
		From(historyTable).
		OrderBy("seq DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list history query: %w", err)
	}

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	items := make([]history.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := decodeEntry(row.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode history row seq=%d: %w", row.Seq, err)
		}
		items = append(items, entry)
	}
	return items, nil
}

func (r *HistoryRepository) Prepend(ctx context.Context, entry history.Entry, limit int) (int, error) {
	model, err := newHistoryInsertModel(entry, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("encode history entry: %w", err)
	}
	insertQuery, insertArgs, err := qb.InsertModel(historyTable, model, "")
	if err != nil {
		return 0, fmt.Errorf("build insert history query: %w", err)
	}

	var count int
	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert history entry: %w", err)
		}

		if limit > 0 {
			trimQuery, trimArgs, err := qb.DeleteFrom(historyTable).
				Where(qb.Expr("seq NOT IN (SELECT seq FROM "+historyTable+" ORDER BY seq DESC LIMIT ?)", limit)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build trim history query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, trimQuery, trimArgs...); err != nil {
				return fmt.Errorf("trim history: %w", err)
			}
		}

		countQuery, countArgs, err := qb.Select("COUNT(*)").From(historyTable).ToSQL()
		if err != nil {
			return fmt.Errorf("build count history query: %w", err)
		}
		if err := tx.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
			return fmt.Errorf("count history: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HistoryRepository) Patch(ctx context.Context, id string, patch history.Entry, now time.Time) error {
	selectQuery, selectArgs, err := qb.Select("seq", "payload").
		From(historyTable).
		Where(qb.Eq("entry_id", id)).
		OrderBy("seq DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build get history entry query: %w", err)
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var row historyRow
		if err := tx.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
			if isNotFound(err) {
				return history.ErrEntryNotFound
			}
			return fmt.Errorf("get history entry id=%s: %w", id, err)
		}

		current, err := decodeEntry(row.Payload)
		if err != nil {
			return fmt.Errorf("decode history row seq=%d: %w", row.Seq, err)
		}
		payload, err := encodeEntry(current.Merge(patch, now))
		if err != nil {
			return fmt.Errorf("encode history entry id=%s: %w", id, err)
		}

		updateQuery, updateArgs, err := qb.Update(historyTable).
			Set("payload", payload).
			Set("updated_at", now.UTC()).
			Where(qb.Eq("seq", row.Seq)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update history query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			return fmt.Errorf("update history entry id=%s: %w", id, err)
		}
		return nil
	})
}
