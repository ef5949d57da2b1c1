package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLiteJournal) GetTrade(id string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT id, time, instrument, action, units, price, risk_amount, balance
		FROM trades
		WHERE id = ?`, id)

	err := row.Scan(
		&rec.ID,
		&rec.Time,
		&rec.Instrument,
		&rec.Action,
		&rec.Units,
		&rec.Price,
		&rec.RiskAmount,
		&rec.Balance,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", id)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesBetween returns trades recorded within [start, end), oldest
// first.
func (j *SQLiteJournal) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, instrument, action, units, price, risk_amount, balance
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Time,
			&rec.Instrument,
			&rec.Action,
			&rec.Units,
			&rec.Price,
			&rec.RiskAmount,
			&rec.Balance,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
