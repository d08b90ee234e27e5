package binsort

import (
	"math"

	"github.com/vovakirdan/binsort/internal/config"
)

// Award returns the points for a catch made with the given streak (the
// number of consecutive catches before this one) at a difficulty level.
func Award(streak, level int, sc config.ScoringConfig) int {
	bonus := float64(min(max(streak, 0), sc.MaxCombo)) * sc.ComboMultiplier
	if sc.LevelFactor > 0 && level > 1 {
		bonus += math.Log(float64(level)) * sc.LevelFactor
	}
	return int(math.Ceil(sc.BasePoints + bonus))
}

// collect credits a catch and extends the streak.
func collect(s *State, sc config.ScoringConfig) int {
	points := Award(s.Combo, s.Level, sc)
	s.Score += points
	s.Combo++
	if s.Combo > s.BestCombo {
		s.BestCombo = s.Combo
	}
	return points
}

// breakCombo resets the streak after a wrong catch, a miss or a rotation.
func breakCombo(s *State, sc config.ScoringConfig) {
	s.Combo = sc.ComboReset
}
