// Package textgen holds what the text generator backends share: how a prompt
// is laid out as a chat and how requests are paced.
package textgen

import (
	"strings"

	"github.com/bnema/sparky/internal/domain"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleTutor  Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// SystemText is the system prompt followed by the instruction for this turn.
func SystemText(prompt domain.Prompt) string {
	if prompt.Instruction == "" {
		return prompt.System
	}
	return prompt.System + "\n\nYour next reply:\n" + prompt.Instruction
}

// Conversation lays the prompt out as a chat: one system message, the excerpt
// as alternating user/tutor messages, then the current utterance.
func Conversation(prompt domain.Prompt) []Message {
	messages := make([]Message, 0, 2+2*len(prompt.Excerpt))
	messages = append(messages, Message{Role: RoleSystem, Content: SystemText(prompt)})
	for _, exchange := range prompt.Excerpt {
		messages = append(messages,
			Message{Role: RoleUser, Content: exchange.Learner},
			Message{Role: RoleTutor, Content: exchange.Tutor},
		)
	}

	learner := prompt.Learner
	if strings.TrimSpace(learner) == "" {
		learner = "(the child is quiet)"
	}
	messages = append(messages, Message{Role: RoleUser, Content: learner})
	return messages
}

// Transcript renders the prompt as a single block of text for backends that
// only take one prompt string.
func Transcript(prompt domain.Prompt) string {
	var b strings.Builder
	for _, message := range Conversation(prompt) {
		switch message.Role {
		case RoleSystem:
			b.WriteString(message.Content)
			b.WriteString("\n\n")
		case RoleUser:
			b.WriteString("Child: ")
			b.WriteString(message.Content)
			b.WriteString("\n")
		case RoleTutor:
			b.WriteString("Sparky: ")
			b.WriteString(message.Content)
			b.WriteString("\n")
		}
	}
	b.WriteString("Sparky:")
	return b.String()
}
