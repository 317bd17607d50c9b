package model

// RiskLevel is the bucketed read of a red-flag score.
type RiskLevel string

const (
	LevelGreen  RiskLevel = "green"
	LevelYellow RiskLevel = "yellow"
	LevelOrange RiskLevel = "orange"
	LevelRed    RiskLevel = "red"
)

// LevelFor buckets a clamped 0-100 score. Thresholds are inclusive upper
// bounds checked in ascending order.
func LevelFor(score int) RiskLevel {
	switch {
	case score <= 20:
		return LevelGreen
	case score <= 45:
		return LevelYellow
	case score <= 70:
		return LevelOrange
	default:
		return LevelRed
	}
}

// Label is the display form of a level.
func (l RiskLevel) Label() string {
	switch l {
	case LevelGreen:
		return "🟢 Green"
	case LevelYellow:
		return "🟡 Yellow"
	case LevelOrange:
		return "🟠 Orange"
	default:
		return "🔴 Red"
	}
}

// Vibe is the one-liner read for a level, shown next to the score.
func (l RiskLevel) Vibe() string {
	switch l {
	case LevelGreen:
		return "This looks pretty healthy. Not perfect, but decent. Celebrate with caution. ✨"
	case LevelYellow:
		return "There are things. Not an emergency siren, but keep your eyes open and your boundaries clear. 👀"
	case LevelOrange:
		return "Careful. These aren't quirks, they're potential patterns. Prioritize boundaries and safety. 🚧"
	default:
		return "No. This isn't a mystery, it's an alarm. If anything made you feel unsafe, trust that signal and get out. 🚨"
	}
}

// ScoreResult is the outcome of scoring one AnswerRecord. Points holds the
// raw pre-clamp sum; Breakdown entries always add up to Points, even when
// Score saturated at 0 or 100.
type ScoreResult struct {
	Score     int            `json:"score"`
	Points    int            `json:"points"`
	Level     RiskLevel      `json:"level"`
	Breakdown map[string]int `json:"breakdown"`
}
