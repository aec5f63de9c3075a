package infra

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

var cachedFieldMap sync.Map

// ToSnakeCase maps struct field names to column names. Runs of uppercase
// letters (ID, URL, HTTP) count as one word.
func ToSnakeCase(s string) string {
	v, ok := cachedFieldMap.Load(s)
	if ok {
		return v.(string)
	}
	isUpper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if isUpper(r) {
			prevLower := i > 0 && !isUpper(rs[i-1])
			nextLower := i+1 < len(rs) && !isUpper(rs[i+1]) && i > 0
			if prevLower || (nextLower && isUpper(rs[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	ret := b.String()
	cachedFieldMap.Store(s, ret)
	return ret
}

func setDBMapper(db *sqlx.DB) {
	db.MapperFunc(ToSnakeCase)
}

func NewPGDB(conf Conf) (*sqlx.DB, error) {
	log.Println("connecting db...")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "postgres", conf.DB)
	if err != nil {
		return nil, err
	}
	setDBMapper(db)
	return db, nil
}

func RunInTx(db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
