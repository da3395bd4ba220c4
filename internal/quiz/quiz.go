// Package quiz implements the "Red Flag" personality quiz: five fixed
// questions, four answers each scored 0..3, and a three-way classification
// of the total.
package quiz

import (
	"errors"
	"fmt"
)

// MaxOptionScore is the score of the "reddest" answer of every question.
const MaxOptionScore = 3

var (
	ErrFinished      = errors.New("quiz already finished")
	ErrNotFinished   = errors.New("quiz not finished")
	ErrInvalidOption = errors.New("invalid option")
)

type Option struct {
	Text  string
	Score int
}

type Question struct {
	Text    string
	Options []Option
}

// Flag is the classification bucket.
type Flag string

const (
	FlagGreen  Flag = "green"
	FlagYellow Flag = "yellow"
	FlagRed    Flag = "red"
)

type Result struct {
	Flag        Flag
	Emoji       string
	Title       string
	Description string
	Total       int
	Percent     float64
}

// ShareText is the line handed to the share service.
func (r Result) ShareText() string {
	return fmt.Sprintf("I took the LoveLab Red Flag Test and I'm a %s (%d/%d)", r.Title, r.Total, len(Questions)*MaxOptionScore)
}

var Questions = []Question{
	{
		Text: "How fast do you reply to texts?",
		Options: []Option{
			{"Instantly — always 📱", 0},
			{"Within an hour ⏰", 1},
			{"When I feel like it 😎", 2},
			{"Days later, if ever 💀", 3},
		},
	},
	{
		Text: "Your partner likes someone's thirst trap. You?",
		Options: []Option{
			{"Don't care at all 😌", 0},
			{"Notice but say nothing 👀", 1},
			{"Bring it up casually 🤨", 2},
			{"Full investigation mode 🕵️", 3},
		},
	},
	{
		Text: "How do you feel about meeting their friends?",
		Options: []Option{
			{"Love it, let's hang! 🎉", 0},
			{"Sure, if I have to 😅", 1},
			{"I'd rather not 😬", 2},
			{"They shouldn't have friends 🚩", 3},
		},
	},
	{
		Text: "Your idea of commitment is...",
		Options: []Option{
			{"Planning the future together 💍", 0},
			{"Being exclusive 🤝", 1},
			{"Keeping options open 🤷", 2},
			{"What's commitment? 🏃", 3},
		},
	},
	{
		Text: "How do you handle arguments?",
		Options: []Option{
			{"Talk it out calmly 🗣️", 0},
			{"Need space first, then talk 🧘", 1},
			{"Silent treatment 🤐", 2},
			{"Scoreboard everything 📋", 3},
		},
	},
}

var results = map[Flag]Result{
	FlagGreen: {
		Flag: FlagGreen, Emoji: "💚", Title: "Green Flag 💚",
		Description: "You're a catch! Healthy communication, trust, and emotional maturity. Your future partner is lucky. Keep being amazing!",
	},
	FlagYellow: {
		Flag: FlagYellow, Emoji: "💛", Title: "Yellow Flag 💛",
		Description: "Mostly good vibes but there's room to grow. A few habits could use some self-reflection. You're aware and that's half the battle!",
	},
	FlagRed: {
		Flag: FlagRed, Emoji: "🚩", Title: "Red Flag 🚩",
		Description: "Uh oh... Some patterns here could cause trouble. Time for a heart-to-heart with yourself. Growth is sexy — start now!",
	},
}

// Classify maps a total over the given number of questions to a bucket:
// below 25% green, below 50% yellow, otherwise red. The comparison is done
// in integers (total*100 < pct*max) so no total sits on a float boundary.
func Classify(total, questions int) Result {
	maxScore := questions * MaxOptionScore

	flag := FlagRed
	switch {
	case maxScore <= 0:
		flag = FlagGreen
	case total*100 < 25*maxScore:
		flag = FlagGreen
	case total*100 < 50*maxScore:
		flag = FlagYellow
	}

	r := results[flag]
	r.Total = total
	if maxScore > 0 {
		r.Percent = float64(total) / float64(maxScore) * 100
	}
	return r
}

// Session holds the answers of one run through the quiz. Answers are
// discarded on Restart; nothing is persisted.
type Session struct {
	questions []Question
	scores    []int
}

func NewSession() *Session {
	return &Session{questions: Questions}
}

// Current returns the index of the next question to answer.
func (s *Session) Current() int { return len(s.scores) }

// Question returns the next unanswered question.
func (s *Session) Question() (Question, bool) {
	if s.Done() {
		return Question{}, false
	}
	return s.questions[len(s.scores)], true
}

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) Done() bool { return len(s.scores) >= len(s.questions) }

// Answer records the option picked (0-based) for the current question.
func (s *Session) Answer(option int) error {
	q, ok := s.Question()
	if !ok {
		return ErrFinished
	}
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, option+1)
	}
	s.scores = append(s.scores, q.Options[option].Score)
	return nil
}

// Total sums the recorded scores.
func (s *Session) Total() int {
	total := 0
	for _, v := range s.scores {
		total += v
	}
	return total
}

func (s *Session) Result() (Result, error) {
	if !s.Done() {
		return Result{}, ErrNotFinished
	}
	return Classify(s.Total(), len(s.questions)), nil
}

func (s *Session) Restart() {
	s.scores = nil
}
