// Package prompt assembles the advisory prompt. Pure templating: the
// output is plain text handed verbatim to the advisory call, never parsed
// back.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"redflag/internal/model"
)

// noteBudget bounds each free-text note inside the prompt.
const noteBudget = 180

var venueLabels = map[model.Venue]string{
	model.VenueRestaurant: "Fancy restaurant",
	model.VenueCafe:       "Cute cafe",
	model.VenuePark:       "Walk in the park",
	model.VenueCinema:     "Cinema",
	model.VenueTheirPlace: "Their place (🚩)",
	model.VenueOther:      "Somewhere else",
}

var staffLabels = map[model.StaffTreatment]string{
	model.StaffWonderful:  "Wonderful",
	model.StaffPolite:     "Polite",
	model.StaffCurt:       "Curt",
	model.StaffRude:       "Rude",
	model.StaffUnanswered: "Unanswered",
}

var exLabels = map[model.ExTopic]string{
	model.ExNoDrama:    "Zero drama",
	model.ExCasual:     "Mentioned them normally",
	model.ExRant:       "Rant / playing the victim",
	model.ExCompared:   "Compared you to them",
	model.ExUnanswered: "Unanswered",
}

var jealousyLabels = map[model.Jealousy]string{
	model.JealousyNone:       "None",
	model.JealousySlight:     "A little",
	model.JealousyStrong:     "Yes",
	model.JealousyUnanswered: "Unanswered",
}

// Build renders the persona instruction plus a short bulleted summary of
// the date. Note bullets are omitted when the note is empty; notes are
// truncated so the prompt stays small.
func Build(rec model.AnswerRecord, result model.ScoreResult) string {
	alcohol := "No"
	if rec.Alcohol {
		alcohol = "Yes"
	}

	lines := []string{
		fmt.Sprintf("- Score: %d/100 (%s)", result.Score, result.Level.Label()),
		fmt.Sprintf("- Location: %s", venueLabels[rec.Location]),
		fmt.Sprintf("- Alcohol?: %s", alcohol),
		fmt.Sprintf("- Treatment of staff: %s", staffLabels[rec.StaffTreatment]),
		fmt.Sprintf("- Exes: %s", exLabels[rec.ExTopic]),
		fmt.Sprintf("- Jealousy: %s", jealousyLabels[rec.Jealousy]),
	}
	if note := strings.TrimSpace(rec.RedNote); note != "" {
		lines = append(lines, fmt.Sprintf("- What felt off: %s", truncate(note, noteBudget)))
	}
	if note := strings.TrimSpace(rec.GreenNote); note != "" {
		lines = append(lines, fmt.Sprintf("- The good part: %s", truncate(note, noteBudget)))
	}

	return "You are the best friend of the girl recounting her date over WhatsApp. " +
		"Tone: fun, direct, warm and protective. A touch of soft sarcasm, zero insults. " +
		"No clinical diagnoses, no therapy-speak, no pathologizing.\n\n" +
		"Goal: give her realistic, actionable advice based on the score. " +
		"If there are safety or control signals, prioritize safety and boundaries. " +
		"If it looks good, hype her up with caution.\n\n" +
		"Format: at most 4 short sentences, chat style. Use 1-3 emojis max (no more, this isn't a carnival).\n\n" +
		"Context:\n" +
		strings.Join(lines, "\n") + "\n\n" +
		"End with one practical thing to do right now (during or after the date)."
}

// truncate cuts s to at most n characters, never splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
