package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// QueryBuilder собирает WHERE условия с позиционными параметрами $1, $2, ...
type QueryBuilder struct {
	conditions []string
	args       []interface{}
}

// Arg добавляет аргумент и возвращает его плейсхолдер.
func (b *QueryBuilder) Arg(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// Where добавляет условие. Плейсхолдеры в условии нужно получать через Arg.
func (b *QueryBuilder) Where(condition string) {
	b.conditions = append(b.conditions, condition)
}

// WhereClause возвращает " WHERE a AND b" или пустую строку.
func (b *QueryBuilder) WhereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// Args возвращает накопленные аргументы.
func (b *QueryBuilder) Args() []interface{} {
	return b.args
}

// EscapeLike экранирует спецсимволы LIKE, чтобы строка искалась буквально.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return Classify("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return Classify("commit transaction", err)
	}

	return nil
}
