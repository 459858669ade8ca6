package psqlbuilder

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// builder squirrel с плейсхолдерами PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

// uniqueViolation код ошибки PostgreSQL для нарушения UNIQUE
const uniqueViolation = "23505"

// IsUniqueViolation проверяет, что запрос упал на уникальном индексе
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
