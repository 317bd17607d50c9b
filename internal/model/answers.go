package model

import (
	"strconv"
	"strings"
)

// Scale is a 0-10 self-rating. ScaleUnanswered marks a question the user
// has not answered yet; scoring substitutes a per-field default for it.
type Scale int

const ScaleUnanswered Scale = -1

// Answered reports whether the scale holds a real rating.
func (s Scale) Answered() bool {
	return s >= 0
}

// Clamped returns the rating forced into [0,10], or def when unanswered.
func (s Scale) Clamped(def int) int {
	if !s.Answered() {
		return def
	}
	return clampInt(int(s), 0, 10)
}

// ParseScale leniently converts form input to a Scale. Accepts numerals,
// clamps out-of-range values into [0,10]; anything starting with the
// "unanswered" sentinel, and any other unparseable string, maps to
// ScaleUnanswered.
func ParseScale(raw string) Scale {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(strings.ToLower(s), "unanswered") {
		return ScaleUnanswered
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ScaleUnanswered
	}
	return Scale(clampInt(n, 0, 10))
}

// Venue is the date location category. Context only, never scored.
type Venue string

const (
	VenueRestaurant Venue = "restaurant"
	VenueCafe       Venue = "cafe"
	VenuePark       Venue = "park"
	VenueCinema     Venue = "cinema"
	VenueTheirPlace Venue = "their_place"
	VenueOther      Venue = "other"
)

// ParseVenue maps unrecognized input to VenueOther.
func ParseVenue(raw string) Venue {
	switch Venue(strings.ToLower(strings.TrimSpace(raw))) {
	case VenueRestaurant, VenueCafe, VenuePark, VenueCinema, VenueTheirPlace:
		return Venue(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return VenueOther
	}
}

// YesNo is the three-valued answer shared by the control/safety questions.
type YesNo string

const (
	YesNoUnanswered YesNo = "unanswered"
	YesNoNo         YesNo = "no"
	YesNoYes        YesNo = "yes"
)

func ParseYesNo(raw string) YesNo {
	switch YesNo(strings.ToLower(strings.TrimSpace(raw))) {
	case YesNoNo:
		return YesNoNo
	case YesNoYes:
		return YesNoYes
	default:
		return YesNoUnanswered
	}
}

// StaffTreatment is how the date treated waitstaff and other personnel.
type StaffTreatment string

const (
	StaffUnanswered StaffTreatment = "unanswered"
	StaffWonderful  StaffTreatment = "wonderful"
	StaffPolite     StaffTreatment = "polite"
	StaffCurt       StaffTreatment = "curt"
	StaffRude       StaffTreatment = "rude"
)

func ParseStaffTreatment(raw string) StaffTreatment {
	switch StaffTreatment(strings.ToLower(strings.TrimSpace(raw))) {
	case StaffWonderful, StaffPolite, StaffCurt, StaffRude:
		return StaffTreatment(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return StaffUnanswered
	}
}

// BoundaryRespect is how the date reacted when a limit was set.
type BoundaryRespect string

const (
	BoundaryUnanswered BoundaryRespect = "unanswered"
	BoundaryFull       BoundaryRespect = "full"   // respected it, 10/10
	BoundaryMixed      BoundaryRespect = "mixed"  // more or less
	BoundaryPushed     BoundaryRespect = "pushed" // kept insisting
)

func ParseBoundaryRespect(raw string) BoundaryRespect {
	switch BoundaryRespect(strings.ToLower(strings.TrimSpace(raw))) {
	case BoundaryFull, BoundaryMixed, BoundaryPushed:
		return BoundaryRespect(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return BoundaryUnanswered
	}
}

// ExTopic is how talk about exes went.
type ExTopic string

const (
	ExUnanswered ExTopic = "unanswered"
	ExNoDrama    ExTopic = "no_drama"
	ExCasual     ExTopic = "casual"
	ExRant       ExTopic = "rant"
	ExCompared   ExTopic = "compared" // compared you to the ex
)

func ParseExTopic(raw string) ExTopic {
	switch ExTopic(strings.ToLower(strings.TrimSpace(raw))) {
	case ExNoDrama, ExCasual, ExRant, ExCompared:
		return ExTopic(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return ExUnanswered
	}
}

// Jealousy is the observed jealousy level.
type Jealousy string

const (
	JealousyUnanswered Jealousy = "unanswered"
	JealousyNone       Jealousy = "none"
	JealousySlight     Jealousy = "slight"
	JealousyStrong     Jealousy = "strong"
)

func ParseJealousy(raw string) Jealousy {
	switch Jealousy(strings.ToLower(strings.TrimSpace(raw))) {
	case JealousyNone, JealousySlight, JealousyStrong:
		return Jealousy(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return JealousyUnanswered
	}
}

// GreenFlag is a positive behavior that subtracts points.
type GreenFlag string

const (
	GreenConsent    GreenFlag = "asked_consent"
	GreenFeltSafe   GreenFlag = "made_you_feel_safe"
	GreenClearComms GreenFlag = "clear_kind_communication"
)

// ParseGreenFlags keeps recognized flags, deduplicated, and drops the rest.
func ParseGreenFlags(raw []string) []GreenFlag {
	var out []GreenFlag
	seen := map[GreenFlag]bool{}
	for _, r := range raw {
		f := GreenFlag(strings.ToLower(strings.TrimSpace(r)))
		switch f {
		case GreenConsent, GreenFeltSafe, GreenClearComms:
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// AnswerRecord is one questionnaire's worth of answers, free of any
// transport concern. Lenient string parsing happens at the REST boundary;
// by the time a record exists every field is inside its legal domain.
type AnswerRecord struct {
	// Context (not required, not scored)
	Location Venue `json:"location"`
	Alcohol  bool  `json:"alcohol"`

	// Communication
	LetMeSpeak     Scale `json:"letMeSpeak"`
	Listened       Scale `json:"listened"`
	AskedQuestions Scale `json:"askedQuestions"`
	PhoneGlances   int   `json:"phoneGlances"`

	// Respect & values
	StaffTreatment  StaffTreatment  `json:"staffTreatment"`
	ValuesAlignment Scale           `json:"valuesAlignment"`
	BoundaryRespect BoundaryRespect `json:"boundaryRespect"`
	ExTopic         ExTopic         `json:"exTopic"`

	// Control, jealousy, safety
	PrivacyControl    YesNo    `json:"privacyControl"`
	Jealousy          Jealousy `json:"jealousy"`
	IsolationPressure YesNo    `json:"isolationPressure"`
	SubstancePressure YesNo    `json:"substancePressure"`
	LoveBombing       YesNo    `json:"loveBombing"`
	Inconsistencies   YesNo    `json:"inconsistencies"`

	// Extras (never gate completeness)
	GreenFlags []GreenFlag `json:"greenFlags,omitempty"`
	RedNote    string      `json:"redNote,omitempty"`
	GreenNote  string      `json:"greenNote,omitempty"`
}

// NewAnswerRecord returns the canonical all-unanswered record for a fresh
// questionnaire.
func NewAnswerRecord() AnswerRecord {
	return AnswerRecord{
		Location:          VenueOther,
		LetMeSpeak:        ScaleUnanswered,
		Listened:          ScaleUnanswered,
		AskedQuestions:    ScaleUnanswered,
		StaffTreatment:    StaffUnanswered,
		ValuesAlignment:   ScaleUnanswered,
		BoundaryRespect:   BoundaryUnanswered,
		ExTopic:           ExUnanswered,
		PrivacyControl:    YesNoUnanswered,
		Jealousy:          JealousyUnanswered,
		IsolationPressure: YesNoUnanswered,
		SubstancePressure: YesNoUnanswered,
		LoveBombing:       YesNoUnanswered,
		Inconsistencies:   YesNoUnanswered,
	}
}

// RequiredFieldCount is the number of answers that gate the verdict.
const RequiredFieldCount = 13

// MissingFields lists the required fields still at their unanswered
// sentinel, in questionnaire order.
func (r *AnswerRecord) MissingFields() []string {
	var missing []string
	add := func(name string, answered bool) {
		if !answered {
			missing = append(missing, name)
		}
	}
	add("letMeSpeak", r.LetMeSpeak.Answered())
	add("listened", r.Listened.Answered())
	add("askedQuestions", r.AskedQuestions.Answered())
	add("staffTreatment", r.StaffTreatment != StaffUnanswered)
	add("valuesAlignment", r.ValuesAlignment.Answered())
	add("privacyControl", r.PrivacyControl != YesNoUnanswered)
	add("boundaryRespect", r.BoundaryRespect != BoundaryUnanswered)
	add("exTopic", r.ExTopic != ExUnanswered)
	add("jealousy", r.Jealousy != JealousyUnanswered)
	add("isolationPressure", r.IsolationPressure != YesNoUnanswered)
	add("substancePressure", r.SubstancePressure != YesNoUnanswered)
	add("loveBombing", r.LoveBombing != YesNoUnanswered)
	add("inconsistencies", r.Inconsistencies != YesNoUnanswered)
	return missing
}

// AnsweredCount counts answered required fields, for progress display.
func (r *AnswerRecord) AnsweredCount() int {
	return RequiredFieldCount - len(r.MissingFields())
}

// Complete reports whether every required field has a real answer.
// Green flags and notes never gate completeness.
func (r *AnswerRecord) Complete() bool {
	return len(r.MissingFields()) == 0
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
