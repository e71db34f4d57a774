package usecase

import (
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

const (
	baseScore        = 50
	seniorityBonus   = 20
	companySizeBonus = 15
	locationBonus    = 10
)

var seniorityPattern = regexp.MustCompile(`(?i)\b(ceo|founder|vp|director|head)\b`)

// Buckets no formato "min,max" usado pelas fontes de leads.
var targetCompanySizes = map[string]bool{
	"51,200":  true,
	"201,500": true,
}

var targetCities = []string{
	"san francisco",
	"new york",
	"austin",
	"boston",
	"seattle",
	"london",
}

type ScoreInput struct {
	Title       string
	CompanySize string
	Location    string
}

// ScoreLead is a pure heuristic used to order dispatch. The result is always
// within [entity.MinScore, entity.MaxScore].
func ScoreLead(in ScoreInput) int {
	score := baseScore

	if seniorityPattern.MatchString(in.Title) {
		score += seniorityBonus
	}

	size := strings.ReplaceAll(strings.TrimSpace(in.CompanySize), " ", "")
	if targetCompanySizes[size] {
		score += companySizeBonus
	}

	if isTargetLocation(in.Location) {
		score += locationBonus
	}

	return clampScore(score)
}

func isTargetLocation(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return false
	}
	if loc == "remote" {
		return true
	}
	for _, city := range targetCities {
		if strings.Contains(loc, city) {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	return min(max(score, entity.MinScore), entity.MaxScore)
}
