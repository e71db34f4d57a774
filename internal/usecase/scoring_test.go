package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLead(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"vp in a target city", ScoreInput{Title: "VP of Sales", CompanySize: "51,200", Location: "San Francisco"}, 95},
		{"no bonus", ScoreInput{Title: "Engineer", CompanySize: "5000+", Location: "Omaha"}, 50},
		{"all bonuses", ScoreInput{Title: "CEO", CompanySize: "51,200", Location: "San Francisco, CA"}, 95},
		{"seniority is a whole word", ScoreInput{Title: "Vice President of VPN"}, 50},
		{"head of", ScoreInput{Title: "Head of Growth"}, 70},
		{"case insensitive", ScoreInput{Title: "co-FOUNDER"}, 70},
		{"larger bucket", ScoreInput{CompanySize: "201,500"}, 65},
		{"size with spaces", ScoreInput{CompanySize: "51, 200"}, 65},
		{"remote", ScoreInput{Location: "Remote"}, 60},
		{"remote must be exact", ScoreInput{Location: "Remote - Brazil"}, 50},
		{"city substring", ScoreInput{Location: "Greater London Area"}, 60},
		{"empty", ScoreInput{}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreLead(tt.in))
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 100, clampScore(130))
	assert.Equal(t, 42, clampScore(42))
}
