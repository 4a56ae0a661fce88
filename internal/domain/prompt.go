package domain

// Exchange is one learner utterance and the tutor reply that followed it.
type Exchange struct {
	Learner string `json:"learner"`
	Tutor   string `json:"tutor"`
}

// Prompt is the structured request handed to a text generator. Adapters decide
// how to map it onto their wire format.
type Prompt struct {
	System      string
	Instruction string
	Excerpt     []Exchange
	Learner     string
	Action      Action
}
