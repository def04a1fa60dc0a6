/*
Package pgadapter provides an implementation of the Adapter
interface in the sqldataset package that works over a PostgreSQL
database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	"github.com/vuthaihoc/cart/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and a limit for open
connections (0 for no limit) and returns an Adapter that works on
the database or an error if it fails to connect to it.
*/
func New(url string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return a.db.QueryContext(ctx, query, args...)
}

func (a *adapter) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (a *adapter) Quote(identifier string) string {
	return fmt.Sprintf("%q", strings.Replace(identifier, `"`, "", -1))
}

func (a *adapter) Close() error {
	return a.db.Close()
}
