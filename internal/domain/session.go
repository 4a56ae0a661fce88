package domain

import "time"

type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateAwaitingInput SessionState = "awaiting_input"
	StateProcessing    SessionState = "processing"
	StateRendering     SessionState = "rendering"
	StateEnded         SessionState = "ended"
)

type EndReason string

const (
	EndLearnerExit EndReason = "learner_exit"
	EndTurnBudget  EndReason = "turn_budget"
	EndTimeBudget  EndReason = "time_budget"
	EndCancelled   EndReason = "cancelled"
)

// Summary describes a session at a point in time.
type Summary struct {
	SessionID      string          `json:"session_id"`
	State          SessionState    `json:"state"`
	EndReason      EndReason       `json:"end_reason,omitempty"`
	StartedAt      time.Time       `json:"started_at"`
	Duration       time.Duration   `json:"duration"`
	Turns          int             `json:"turns"`
	Level          LanguageLevel   `json:"level"`
	CurrentEmotion EmotionReading  `json:"current_emotion"`
	Trend          EmotionTrend    `json:"trend"`
	Stats          TrajectoryStats `json:"stats"`
	Farewell       string          `json:"farewell,omitempty"`
}

// Farewell picks a closing line for the learner's final mood.
func Farewell(emotion EmotionLabel) string {
	switch emotion {
	case EmotionHappy, EmotionExcited:
		return "That was so much fun! See you next time, buddy! 🌟 再见 (zàijiàn)!"
	case EmotionTired, EmotionSad:
		return "Rest well, my friend! Tomorrow will be even better! 💤 晚安 (wǎn'ān)!"
	default:
		return "Great job today! Can't wait to play again! 👋 再见 (zàijiàn)!"
	}
}
