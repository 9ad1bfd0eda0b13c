package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/todoapp/backend/internal/infrastructure/log"
)

// call 记录一次 SQL 调用
type call struct {
	sql  string
	args []any
}

// fakeConn 模拟借出的连接
type fakeConn struct {
	calls    []call
	released int

	row      *fakeRow
	rows     *fakeRows
	queryErr error
	execTag  pgconn.CommandTag
	execErr  error
}

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.calls = append(c.calls, call{sql: sql, args: args})
	return c.execTag, c.execErr
}

func (c *fakeConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.calls = append(c.calls, call{sql: sql, args: args})
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return c.rows, nil
}

func (c *fakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	c.calls = append(c.calls, call{sql: sql, args: args})
	if c.row == nil {
		return &fakeRow{err: pgx.ErrNoRows}
	}
	return c.row
}

func (c *fakeConn) Release() { c.released++ }

// newFakePool 返回总是借出 conn 的连接池
func newFakePool(conn *fakeConn) *Pool {
	return &Pool{
		acquire: func(ctx context.Context) (lease, error) { return conn, nil },
		logger:  log.NewModuleLogger("storage", "test"),
	}
}

// fakeRow 模拟单行结果
type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

// fakeRows 模拟多行结果
type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newFakeRows(data ...[]any) *fakeRows {
	return &fakeRows{data: data, idx: -1}
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(dest, r.data[r.idx])
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.idx], nil
}

// assign 把模拟值写入 Scan 目标
func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			s, ok := values[i].(string)
			if !ok {
				return fmt.Errorf("scan: column %d is %T, want string", i, values[i])
			}
			*p = s
		case **bool:
			if values[i] == nil {
				*p = nil
				continue
			}
			b := values[i].(bool)
			*p = &b
		case **time.Time:
			if values[i] == nil {
				*p = nil
				continue
			}
			t := values[i].(time.Time)
			*p = &t
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}
