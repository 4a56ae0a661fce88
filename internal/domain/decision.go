package domain

type Action string

const (
	ActionIntroduceWord Action = "introduce_word"
	ActionReviewWord    Action = "review_word"
	ActionEncourage     Action = "encourage"
	ActionSimplify      Action = "simplify"
	ActionEscalate      Action = "escalate"
	ActionContinue      Action = "continue"
)

var Actions = []Action{
	ActionIntroduceWord,
	ActionReviewWord,
	ActionEncourage,
	ActionSimplify,
	ActionEscalate,
	ActionContinue,
}

func (a Action) Valid() bool {
	switch a {
	case ActionIntroduceWord, ActionReviewWord, ActionEncourage,
		ActionSimplify, ActionEscalate, ActionContinue:
		return true
	default:
		return false
	}
}

// TargetsWord reports whether the action is about a specific vocabulary word.
func (a Action) TargetsWord() bool {
	return a == ActionIntroduceWord || a == ActionReviewWord
}

type Decision struct {
	Action     Action `json:"action"`
	TargetWord string `json:"target_word,omitempty"`
	Rationale  string `json:"rationale"`
}
