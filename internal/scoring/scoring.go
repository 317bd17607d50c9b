// Package scoring turns a questionnaire record into a red-flag score.
// It is a pure weighted sum: deterministic, no I/O, and it never fails —
// missing answers degrade to a fixed mid-point default for their field.
package scoring

import (
	"math"

	"redflag/internal/model"
)

// Default mid-points charged when a field is unanswered. Never zero:
// uncertainty costs points.
const (
	defaultCommScale   = 5 // communication 0-10 scales
	defaultValuesScale = 6 // values alignment 0-10 scale
)

// Per-field point tables. Weights are policy, not configuration.
var staffPoints = map[model.StaffTreatment]int{
	model.StaffWonderful:  0,
	model.StaffPolite:     5,
	model.StaffCurt:       15,
	model.StaffRude:       25,
	model.StaffUnanswered: 10,
}

var boundaryPoints = map[model.BoundaryRespect]int{
	model.BoundaryFull:       0,
	model.BoundaryMixed:      10,
	model.BoundaryPushed:     25,
	model.BoundaryUnanswered: 8,
}

var exPoints = map[model.ExTopic]int{
	model.ExNoDrama:    0,
	model.ExCasual:     5,
	model.ExRant:       10,
	model.ExCompared:   15,
	model.ExUnanswered: 6,
}

var jealousyPoints = map[model.Jealousy]int{
	model.JealousyNone:       0,
	model.JealousySlight:     8,
	model.JealousyStrong:     15,
	model.JealousyUnanswered: 6,
}

var greenBonus = map[model.GreenFlag]int{
	model.GreenConsent:    10,
	model.GreenFeltSafe:   8,
	model.GreenClearComms: 7,
}

// yesNoPoints charges yes fully, unanswered the field's mid-point, no zero.
func yesNoPoints(v model.YesNo, yes, unanswered int) int {
	switch v {
	case model.YesNoYes:
		return yes
	case model.YesNoUnanswered:
		return unanswered
	default:
		return 0
	}
}

// scalePenalty converts an engagement rating to points: the lower the
// rating, the more points. Unanswered ratings use def. Ties round to
// even, so a 4.5 values penalty charges 4, not 5.
func scalePenalty(s model.Scale, def int, weight float64) int {
	return int(math.RoundToEven(float64(10-s.Clamped(def)) * weight))
}

// Score computes the 0-100 red-flag score, its level, and a per-category
// breakdown. The breakdown always sums to the raw point total, which at the
// extremes can differ from the clamped score; that divergence is the whole
// point of showing the breakdown.
func Score(rec model.AnswerRecord) model.ScoreResult {
	points := 0
	breakdown := make(map[string]int)

	add := func(category string, p int) {
		points += p
		breakdown[category] = p
	}

	add("Staff treatment", lookup(staffPoints, rec.StaffTreatment, 10))
	add("Privacy control", yesNoPoints(rec.PrivacyControl, 20, 8))
	add("Boundary respect", lookup(boundaryPoints, rec.BoundaryRespect, 8))
	add("Ex talk", lookup(exPoints, rec.ExTopic, 6))
	add("Jealousy", lookup(jealousyPoints, rec.Jealousy, 6))
	add("Pushed for isolated place", yesNoPoints(rec.IsolationPressure, 25, 10))
	add("Pressure to drink", yesNoPoints(rec.SubstancePressure, 20, 8))
	add("Love bombing", yesNoPoints(rec.LoveBombing, 15, 5))
	add("Inconsistencies", yesNoPoints(rec.Inconsistencies, 15, 6))

	add("Didn't really listen", scalePenalty(rec.Listened, defaultCommScale, 1.2))
	add("Didn't let you speak", scalePenalty(rec.LetMeSpeak, defaultCommScale, 1.2))
	add("Zero curiosity about you", scalePenalty(rec.AskedQuestions, defaultCommScale, 1.0))
	add("Values misaligned", scalePenalty(rec.ValuesAlignment, defaultValuesScale, 0.9))

	// Phone at the table: capped linear penalty.
	glances := rec.PhoneGlances
	if glances < 0 {
		glances = 0
	}
	add("Phone too present", int(math.Min(float64(glances)*1.2, 15)))

	// Green flags subtract. The bonus itself is uncapped; only the final
	// score is clamped.
	bonus := 0
	for _, f := range rec.GreenFlags {
		bonus += greenBonus[f]
	}
	add("Green flags", -bonus)

	score := clamp(points, 0, 100)

	return model.ScoreResult{
		Score:     score,
		Points:    points,
		Level:     model.LevelFor(score),
		Breakdown: breakdown,
	}
}

func lookup[K comparable](table map[K]int, key K, def int) int {
	if p, ok := table[key]; ok {
		return p
	}
	return def
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
