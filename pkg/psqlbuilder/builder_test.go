package psqlbuilder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").From("services").
		Where(squirrel.Eq{"tenant_id": "t1", "is_active": true}).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "$1")
	assert.Contains(t, query, "$2")
	assert.Len(t, args, 2)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
