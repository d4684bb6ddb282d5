package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBadgeTierFor(t *testing.T) {
	cases := map[int]string{
		0:   "none",
		1:   "bronze",
		4:   "bronze",
		5:   "silver",
		9:   "silver",
		10:  "gold",
		24:  "gold",
		25:  "platinum",
		300: "platinum",
	}
	for count, want := range cases {
		assert.Equal(t, want, BadgeTierFor(count), "count=%d", count)
	}
}

func TestReferralProgressFor(t *testing.T) {
	p := ReferralProgressFor("ABCD2345", 7)
	assert.Equal(t, "silver", p.CurrentTier)
	require.NotNil(t, p.NextTier)
	assert.Equal(t, "gold", *p.NextTier)
	assert.Equal(t, 3, p.Remaining)
	assert.Equal(t, 40, p.Percent)

	top := ReferralProgressFor("ABCD2345", 30)
	assert.Equal(t, "platinum", top.CurrentTier)
	assert.Nil(t, top.NextTier)
	assert.Equal(t, 0, top.Remaining)
	assert.Equal(t, 100, top.Percent)
}

func TestReferralProgressFor_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 200).Draw(t, "count")
		p := ReferralProgressFor("X", count)

		if p.Percent < 0 || p.Percent > 100 {
			t.Fatalf("percent out of range: %d", p.Percent)
		}
		if p.NextTier == nil {
			if p.CurrentTier != "platinum" {
				t.Fatalf("only the top tier has no next tier, got %s", p.CurrentTier)
			}
			return
		}
		if p.Remaining <= 0 {
			t.Fatalf("remaining must be positive below the top tier, got %d", p.Remaining)
		}
		if BadgeTierFor(count+p.Remaining) != *p.NextTier {
			t.Fatalf("reaching remaining must unlock %s", *p.NextTier)
		}
	})
}

func TestNewReferralCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := NewReferralCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.Contains(t, referralAlphabet, string(r))
		}
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 45)
}
