package sqlite

import (
	"github.com/fwojciec/zealdoc"
	"github.com/ncruces/go-sqlite3"
)

// registerScore makes zealdoc.Score callable from SQL as
// zealScore(needle, haystack). It must be registered on every connection.
func registerScore(conn *sqlite3.Conn) error {
	return conn.CreateFunction(zealdoc.ScoreFunctionName, 2, sqlite3.DETERMINISTIC|sqlite3.INNOCUOUS,
		func(ctx sqlite3.Context, arg ...sqlite3.Value) {
			ctx.ResultInt(zealdoc.Score(arg[0].Text(), arg[1].Text()))
		})
}
