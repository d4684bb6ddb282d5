package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "($1, $2, $3)", Placeholders(1, 3))
	assert.Equal(t, "($1, $2), ($3, $4)", Placeholders(2, 2))
	assert.Equal(t, "", Placeholders(0, 2))
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%ink%`, LikePattern("ink"))
	assert.Equal(t, `%100\%\_off%`, LikePattern("100%_off"))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("professional repository: set slug %w", &pq.Error{Code: "23505"})
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
