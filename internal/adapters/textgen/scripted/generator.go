// Package scripted is an offline text generator. It replays a fixed script and
// falls back to canned lines per teaching action.
package scripted

import (
	"context"
	"sync"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

var cannedLines = map[domain.Action][]string{
	domain.ActionIntroduceWord: {
		"Ooh! I know a Shining Valley word for that! Want to hear it?",
		"Psst, I have a secret word for you!",
	},
	domain.ActionReviewWord: {
		"Hey, remember our word from before? Let's say it together!",
		"I hear an old friend word coming back!",
	},
	domain.ActionEncourage: {
		"You're doing so well, buddy! 加油 (jiāyóu)!",
		"It's okay! We're learning together, and that's the best part!",
	},
	domain.ActionSimplify: {
		"Let's make it super easy. Just one word, okay?",
		"How about a tiny game? I'll go first!",
	},
	domain.ActionEscalate: {
		"Wow, you're a star! Ready for a bigger adventure?",
	},
	domain.ActionContinue: {
		"Yay! Tell me more!",
		"Ooh, and then what happened?",
	},
}

type Generator struct {
	mu     sync.Mutex
	script []string
	next   int
	counts map[domain.Action]int
}

var _ ports.TextGenerator = (*Generator)(nil)

// NewGenerator replies with script lines in order, then with canned lines.
func NewGenerator(script ...string) *Generator {
	return &Generator{script: script, counts: map[domain.Action]int{}}
}

func (g *Generator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next < len(g.script) {
		line := g.script[g.next]
		g.next++
		return line, nil
	}

	lines, ok := cannedLines[prompt.Action]
	if !ok {
		lines = cannedLines[domain.ActionContinue]
	}
	line := lines[g.counts[prompt.Action]%len(lines)]
	g.counts[prompt.Action]++
	return line, nil
}
