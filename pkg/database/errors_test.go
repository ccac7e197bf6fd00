package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("reserve: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: issued_identifiers.id")))
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "issued_identifiers_pkey" (SQLSTATE 23505)`)))
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}

func TestOptionsDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", Options{URL: "postgres://u@h/db", Host: "ignored"}.DSN())
	assert.Equal(t,
		"host=localhost user=pms password=secret dbname=pms port=5432 sslmode=disable TimeZone=UTC",
		Options{Host: "localhost", User: "pms", Password: "secret", Name: "pms", Port: "5432"}.DSN(),
	)
}
