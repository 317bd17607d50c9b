package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag/internal/model"
)

func sampleRecord() model.AnswerRecord {
	rec := model.NewAnswerRecord()
	rec.Location = model.VenueCafe
	rec.Alcohol = true
	rec.StaffTreatment = model.StaffCurt
	rec.ExTopic = model.ExRant
	rec.Jealousy = model.JealousySlight
	return rec
}

func sampleResult() model.ScoreResult {
	return model.ScoreResult{
		Score:  52,
		Points: 52,
		Level:  model.LevelOrange,
	}
}

func TestBuild_ContainsScoreAndContext(t *testing.T) {
	t.Parallel()

	p := Build(sampleRecord(), sampleResult())

	assert.Contains(t, p, "- Score: 52/100 (🟠 Orange)")
	assert.Contains(t, p, "- Location: Cute cafe")
	assert.Contains(t, p, "- Alcohol?: Yes")
	assert.Contains(t, p, "- Treatment of staff: Curt")
	assert.Contains(t, p, "- Exes: Rant / playing the victim")
	assert.Contains(t, p, "- Jealousy: A little")
	assert.Contains(t, p, "best friend")
	assert.Contains(t, p, "at most 4 short sentences")
}

func TestBuild_OmitsEmptyNotes(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.RedNote = "   "
	rec.GreenNote = ""

	p := Build(rec, sampleResult())

	assert.NotContains(t, p, "What felt off")
	assert.NotContains(t, p, "The good part")
}

func TestBuild_TruncatesNotes(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.RedNote = strings.Repeat("a", 400)
	rec.GreenNote = "held the door"

	p := Build(rec, sampleResult())

	require.Contains(t, p, "- What felt off: ")
	assert.Contains(t, p, "- The good part: held the door")
	assert.Contains(t, p, strings.Repeat("a", 180))
	assert.NotContains(t, p, strings.Repeat("a", 181))
}

func TestBuild_TruncationKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.RedNote = strings.Repeat("a", 179) + strings.Repeat("🚩", 10)

	p := Build(rec, sampleResult())

	assert.True(t, utf8.ValidString(p))
	assert.Contains(t, p, strings.Repeat("a", 179)+"🚩")
	assert.NotContains(t, p, "🚩🚩")
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Build(sampleRecord(), sampleResult()), Build(sampleRecord(), sampleResult()))
}
