package service

import (
	"crypto/rand"
	"math/big"

	"github.com/indievia/indievia-backend/internal/models"
)

// BadgeTier ступень реферальной программы.
type BadgeTier struct {
	Name      string
	Threshold int
}

// BadgeTiers упорядочены по возрастанию порога.
var BadgeTiers = []BadgeTier{
	{Name: "none", Threshold: 0},
	{Name: "bronze", Threshold: 1},
	{Name: "silver", Threshold: 5},
	{Name: "gold", Threshold: 10},
	{Name: "platinum", Threshold: 25},
}

// BadgeTierFor возвращает название ступени для количества приглашённых.
func BadgeTierFor(count int) string {
	return BadgeTiers[tierIndex(count)].Name
}

func tierIndex(count int) int {
	idx := 0
	for i, t := range BadgeTiers {
		if count >= t.Threshold {
			idx = i
		}
	}
	return idx
}

// ReferralProgressFor считает прогресс до следующей ступени.
func ReferralProgressFor(code string, count int) models.ReferralProgress {
	if count < 0 {
		count = 0
	}
	idx := tierIndex(count)
	progress := models.ReferralProgress{
		Code:        code,
		Count:       count,
		CurrentTier: BadgeTiers[idx].Name,
		Percent:     100,
	}
	if idx == len(BadgeTiers)-1 {
		return progress
	}

	current, next := BadgeTiers[idx], BadgeTiers[idx+1]
	progress.NextTier = &next.Name
	progress.Remaining = next.Threshold - count
	progress.Percent = (count - current.Threshold) * 100 / (next.Threshold - current.Threshold)
	return progress
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReferralCode генерирует код из 8 символов без похожих букв и цифр.
func NewReferralCode() (string, error) {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(referralAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referralAlphabet[n.Int64()]
	}
	return string(buf), nil
}
