package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/jmoiron/sqlx"
)

// stubConnector serves canned rows so repository scans run against the
// exact column shapes the migrations produce, without a live database.
type stubConnector struct {
	rows func() *stubRows
}

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return &stubConn{rows: c.rows}, nil
}

func (c stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through sql.OpenDB")
}

type stubConn struct {
	rows func() *stubRows
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return &stubStmt{rows: c.rows}, nil }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("transactions unsupported") }

type stubStmt struct {
	rows func() *stubRows
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.ResultNoRows, nil
}

func (s *stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return s.rows(), nil
}

type stubRows struct {
	columns []string
	values  [][]driver.Value
	idx     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.idx])
	r.idx++
	return nil
}

func stubDB(rows func() *stubRows) *sqlx.DB {
	return sqlx.NewDb(sql.OpenDB(stubConnector{rows: rows}), "postgres")
}

var teamColumns = []string{"id", "name", "state", "aliases", "founded"}

// A row exactly as the teams schema stores it: id is TEXT and defaults to
// the empty string, aliases is a TEXT[] literal.
func seededTeamRows() *stubRows {
	return &stubRows{
		columns: teamColumns,
		values: [][]driver.Value{
			{"", "Flamengo", "RJ", []byte("{Flamengo,Flamengo-RJ}"), int64(1895)},
		},
	}
}

func TestTeamRepository_List_ScansSchemaRow(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(stubDB(seededTeamRows))

	teams, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}

	got := teams[0]
	if got.ID != "" {
		t.Fatalf("expected the schema's default empty id, got %q", got.ID)
	}
	if got.Name != "Flamengo" || got.State != "RJ" || got.Founded != 1895 {
		t.Fatalf("unexpected team: %+v", got)
	}
	if len(got.Aliases) != 2 || got.Aliases[0] != "Flamengo" || got.Aliases[1] != "Flamengo-RJ" {
		t.Fatalf("unexpected aliases: %+v", got.Aliases)
	}
}

func TestTeamRepository_GetByName_ScansSchemaRow(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(stubDB(seededTeamRows))

	got, found, err := repo.GetByName(context.Background(), "Flamengo-RJ")
	if err != nil {
		t.Fatalf("GetByName error: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if got.Name != "Flamengo" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestTeamRepository_GetByName_NoRows(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(stubDB(func() *stubRows {
		return &stubRows{columns: teamColumns}
	}))

	_, found, err := repo.GetByName(context.Background(), "Botafogo-XX")
	if err != nil {
		t.Fatalf("GetByName error: %v", err)
	}
	if found {
		t.Fatal("expected no match for an empty result set")
	}
}
