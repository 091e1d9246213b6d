// Package nullable converts database/sql null wrappers to pointers.
package nullable

import (
	"database/sql"
	"time"
)

func String(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func Time(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func Float64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func Int64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
