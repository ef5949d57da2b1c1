package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Record(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(id, time, instrument, action, units, price, risk_amount, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Time.UTC(), t.Instrument, t.Action,
		t.Units, t.Price, t.RiskAmount, t.Balance,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
