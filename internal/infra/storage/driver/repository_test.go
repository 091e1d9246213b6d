package driver

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

type fakeExecutor struct {
	query  string
	args   []interface{}
	result sql.Result
}

func (e *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return e.result, nil
}

func (e *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not used")
}

func (e *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestSetActive(t *testing.T) {
	db := &fakeExecutor{result: fakeResult{rows: 1}}
	repo := NewRepository(db)

	require.NoError(t, repo.SetActive(context.Background(), "D0002", false))
	assert.Equal(t, "UPDATE drivers SET is_active = $1, updated_at = NOW() WHERE driver_code = $2", db.query)
	assert.Equal(t, []interface{}{false, "D0002"}, db.args)
}

func TestSetActive_UnknownCode(t *testing.T) {
	repo := NewRepository(&fakeExecutor{result: fakeResult{rows: 0}})

	err := repo.SetActive(context.Background(), "D9999", true)
	assert.ErrorIs(t, err, ErrDriverNotFound)
}
