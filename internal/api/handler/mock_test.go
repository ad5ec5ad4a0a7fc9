package handler

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// handlerMockDB implements core.DB for handler tests.
type handlerMockDB struct {
	mock.Mock
}

func (m *handlerMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *handlerMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// handlerExecTag builds a CommandTag reporting n affected rows.
func handlerExecTag(n int) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", n))
}

// handlerMockRow implements pgx.Row for handler tests.
type handlerMockRow struct {
	scanFunc func(dest ...any) error
}

func (m *handlerMockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// handlerMockRows implements pgx.Rows, yielding one row per scan function.
type handlerMockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
}

func newHandlerMockRows(scanFuncs ...func(dest ...any) error) *handlerMockRows {
	return &handlerMockRows{scanFuncs: scanFuncs}
}

func (m *handlerMockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *handlerMockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *handlerMockRows) Err() error                                   { return nil }
func (m *handlerMockRows) Close()                                       {}
func (m *handlerMockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *handlerMockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *handlerMockRows) RawValues() [][]byte                          { return nil }
func (m *handlerMockRows) Values() ([]any, error)                       { return nil, nil }
func (m *handlerMockRows) Conn() *pgx.Conn                              { return nil }
