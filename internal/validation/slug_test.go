package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My Studio!! 2024":      "my-studio-2024",
		"  Ink & Needle  ":      "ink-needle",
		"already-a-slug":        "already-a-slug",
		"Lash---Bar":            "lash-bar",
		"snake_case Name":       "snake_case-name",
		"!!!":                   "",
		"Салон Красоты":         "",
		"Nails by Anna (Paris)": "nails-by-anna-paris",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.String().Draw(rt, "in")
		out := Slugify(in)

		if out != "" && !IsSlug(out) {
			rt.Fatalf("Slugify(%q) = %q is not canonical", in, out)
		}
		if again := Slugify(out); again != out {
			rt.Fatalf("not idempotent: %q -> %q -> %q", in, out, again)
		}
	})
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("my-studio-2024"))
	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("My-Studio"))
	assert.Error(t, ValidateSlug("-edge-"))
	assert.Error(t, ValidateSlug("a--b"))
}
