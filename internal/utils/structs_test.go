package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructTagValues(t *testing.T) {
	type row struct {
		ID        int64  `db:"id"`
		Name      string `db:"name"`
		Ignored   string `db:"-"`
		Untagged  string
		unexport  string `db:"hidden"`
		CreatedAt string `db:"created_at"`
	}

	got := StructTagValues(row{})
	assert.Equal(t, []string{"id", "name", "created_at"}, got)

	gotPtr := StructTagValues(&row{})
	assert.Equal(t, got, gotPtr)
}

func TestPointerHelpers(t *testing.T) {
	s := StringPtr("x")
	if assert.NotNil(t, s) {
		assert.Equal(t, "x", *s)
	}
	i := Int64Ptr(7)
	if assert.NotNil(t, i) {
		assert.Equal(t, int64(7), *i)
	}
}

func TestNanoIDSize(t *testing.T) {
	assert.Len(t, NanoID(), NanoidSize)
	assert.Len(t, NanoIDSize(20), 20)
	assert.Len(t, NanoIDSize(0), NanoidSize)
}
