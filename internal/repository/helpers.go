package repository

import (
	"database/sql"
	"time"
)

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func rowsAffectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
