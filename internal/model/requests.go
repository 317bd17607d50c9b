package model

// CreateSessionResponse is returned by POST /v1/sessions.
type CreateSessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
	Page      Page   `json:"page"`
}

// CredentialRequest is the intake submission.
type CredentialRequest struct {
	APIKey string `json:"apiKey"`
}

// NavigateRequest is an explicit back-navigation action.
type NavigateRequest struct {
	Page string `json:"page"`
}

// AnswerForm is the raw questionnaire form. Scale fields travel as strings
// so the "unanswered" sentinel (and whatever else a client types) can reach
// the lenient parser instead of failing JSON decoding.
type AnswerForm struct {
	Location string `json:"location"`
	Alcohol  bool   `json:"alcohol"`

	LetMeSpeak     string `json:"letMeSpeak"`
	Listened       string `json:"listened"`
	AskedQuestions string `json:"askedQuestions"`
	PhoneGlances   int    `json:"phoneGlances"`

	StaffTreatment  string `json:"staffTreatment"`
	ValuesAlignment string `json:"valuesAlignment"`
	BoundaryRespect string `json:"boundaryRespect"`
	ExTopic         string `json:"exTopic"`

	PrivacyControl    string `json:"privacyControl"`
	Jealousy          string `json:"jealousy"`
	IsolationPressure string `json:"isolationPressure"`
	SubstancePressure string `json:"substancePressure"`
	LoveBombing       string `json:"loveBombing"`
	Inconsistencies   string `json:"inconsistencies"`

	GreenFlags []string `json:"greenFlags"`
	RedNote    string   `json:"redNote"`
	GreenNote  string   `json:"greenNote"`
}

// Record converts the form into a typed AnswerRecord. Every field is
// parsed leniently: unrecognized categorical input and unparseable scale
// input become the unanswered sentinel, numeric input is clamped into its
// domain. No input makes this fail.
func (f *AnswerForm) Record() AnswerRecord {
	rec := AnswerRecord{
		Location:          ParseVenue(f.Location),
		Alcohol:           f.Alcohol,
		LetMeSpeak:        ParseScale(f.LetMeSpeak),
		Listened:          ParseScale(f.Listened),
		AskedQuestions:    ParseScale(f.AskedQuestions),
		PhoneGlances:      f.PhoneGlances,
		StaffTreatment:    ParseStaffTreatment(f.StaffTreatment),
		ValuesAlignment:   ParseScale(f.ValuesAlignment),
		BoundaryRespect:   ParseBoundaryRespect(f.BoundaryRespect),
		ExTopic:           ParseExTopic(f.ExTopic),
		PrivacyControl:    ParseYesNo(f.PrivacyControl),
		Jealousy:          ParseJealousy(f.Jealousy),
		IsolationPressure: ParseYesNo(f.IsolationPressure),
		SubstancePressure: ParseYesNo(f.SubstancePressure),
		LoveBombing:       ParseYesNo(f.LoveBombing),
		Inconsistencies:   ParseYesNo(f.Inconsistencies),
		GreenFlags:        ParseGreenFlags(f.GreenFlags),
		RedNote:           f.RedNote,
		GreenNote:         f.GreenNote,
	}
	if rec.PhoneGlances < 0 {
		rec.PhoneGlances = 0
	}
	return rec
}

// SessionStateResponse is the full view a client needs to render the
// current screen. The credential only ever appears masked.
type SessionStateResponse struct {
	SessionID string       `json:"sessionId"`
	Page      Page         `json:"page"`
	MaskedKey string       `json:"maskedKey,omitempty"`
	Answers   AnswerRecord `json:"answers"`
	Answered  int          `json:"answered"`
	Required  int          `json:"required"`
	HasResult bool         `json:"hasResult"`
}

// VerdictResponse carries the computed result plus the static display copy.
type VerdictResponse struct {
	Score       int            `json:"score"`
	Points      int            `json:"points"`
	Level       RiskLevel      `json:"level"`
	LevelLabel  string         `json:"levelLabel"`
	Vibe        string         `json:"vibe"`
	Breakdown   map[string]int `json:"breakdown"`
	Explanation string         `json:"explanation"`
}

// AdviceResponse wraps the advisory message.
type AdviceResponse struct {
	Message string `json:"message"`
}
