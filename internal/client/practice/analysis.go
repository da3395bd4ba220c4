// Package practice runs the one-time proposal practice: a camera session
// capped at one minute followed by a playful mock analysis.
package practice

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// MaxDuration is the longest recording; the session finishes itself then.
const MaxDuration = 60 * time.Second

// FeedbackPool is sampled without replacement for every analysis.
var FeedbackPool = []string{
	"Your confidence is impressive 💪",
	"Try maintaining more eye contact 👀",
	"Smile more to sound warmer 😊",
	"Speak slightly slower for better emotion ❤️",
	"Great energy! Keep it natural ✨",
}

// Rand is the randomness source. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// Result is the outcome of one practice. Confidence is within [0,98],
// Stars within [0,5], Feedback holds 2 or 3 distinct pool entries.
type Result struct {
	Confidence int
	Stars      int
	Feedback   []string
}

type Generator struct {
	rnd Rand
}

// NewGenerator uses r, or the global math/rand/v2 source when r is nil.
func NewGenerator(r Rand) *Generator {
	if r == nil {
		r = defaultRand{}
	}
	return &Generator{rnd: r}
}

// Analyze scores a recording of the given length. Only whole seconds count
// and anything past MaxDuration is ignored.
func (g *Generator) Analyze(elapsed time.Duration) Result {
	secs := int(min(max(elapsed, 0), MaxDuration) / time.Second)

	bonus := secs * 15 / 60
	base := 65 + g.rnd.IntN(18)
	confidence := min(98, base+bonus)

	stars := 2
	switch {
	case confidence >= 90:
		stars = 5
	case confidence >= 80:
		stars = 4
	case confidence >= 70:
		stars = 3
	}
	if g.rnd.IntN(2) == 1 {
		stars++
	}
	stars = min(5, stars)

	count := 2 + g.rnd.IntN(2)
	return Result{Confidence: confidence, Stars: stars, Feedback: g.sample(count)}
}

func (g *Generator) sample(count int) []string {
	pool := make([]string, len(FeedbackPool))
	copy(pool, FeedbackPool)
	for i := 0; i < count; i++ {
		j := i + g.rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}

// FormatElapsed renders d as mm:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(max(d, 0) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
