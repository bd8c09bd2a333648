package postgres

import (
	"database/sql"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/live-corners/internal/domain/history"
)

const historyTable = "recommendation_history"

type historyInsertModel struct {
	EntryID   sql.NullString `db:"entry_id"`
	Payload   string         `db:"payload"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type historyRow struct {
	Seq     int64  `db:"seq"`
	Payload []byte `db:"payload"`
}

func newHistoryInsertModel(entry history.Entry, now time.Time) (historyInsertModel, error) {
	payload, err := encodeEntry(entry)
	if err != nil {
		return historyInsertModel{}, err
	}
	id := entry.ID()
	return historyInsertModel{
		EntryID:   sql.NullString{String: id, Valid: id != ""},
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func encodeEntry(entry history.Entry) (string, error) {
	if entry == nil {
		return "{}", nil
	}
	return sonic.MarshalString(entry)
}

func decodeEntry(raw []byte) (history.Entry, error) {
	entry := history.Entry{}
	if len(raw) == 0 {
		return entry, nil
	}
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return entry, nil
}
