package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("Anna.Ink@Example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("no-at-sign"))
	assert.Error(t, ValidateEmail("a@b"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret123"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("instagram", nil))
	assert.NoError(t, ValidateURL("instagram", strPtr("https://instagram.com/ink")))
	assert.Error(t, ValidateURL("instagram", strPtr("ftp://instagram.com")))
	assert.Error(t, ValidateURL("instagram", strPtr("https://")))
}

func TestValidateRatingAndBody(t *testing.T) {
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
	assert.Error(t, ValidateReviewBody("short"))
	assert.NoError(t, ValidateReviewBody("Great session, very clean studio."))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("+33612345678"))
	assert.Error(t, ValidatePhone("0612345678"))
}
