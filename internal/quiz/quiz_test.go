package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Buckets(t *testing.T) {
	want := map[int]Flag{
		0: FlagGreen, 1: FlagGreen, 2: FlagGreen, 3: FlagGreen,
		4: FlagYellow, 5: FlagYellow, 6: FlagYellow, 7: FlagYellow,
		8: FlagRed, 9: FlagRed, 10: FlagRed, 11: FlagRed, 12: FlagRed, 13: FlagRed, 14: FlagRed, 15: FlagRed,
	}
	for total, flag := range want {
		assert.Equal(t, flag, Classify(total, 5).Flag, "total %d", total)
	}
}

func TestClassify_AgreesWithPercentage(t *testing.T) {
	for total := 0; total <= 15; total++ {
		r := Classify(total, 5)
		pct := float64(total) / 15 * 100
		assert.InDelta(t, pct, r.Percent, 1e-9)

		var expected Flag
		switch {
		case pct < 25:
			expected = FlagGreen
		case pct < 50:
			expected = FlagYellow
		default:
			expected = FlagRed
		}
		assert.Equal(t, expected, r.Flag, "total %d", total)
	}
}

func TestQuestions_Shape(t *testing.T) {
	require.Len(t, Questions, 5)
	for _, q := range Questions {
		require.Len(t, q.Options, 4)
		for i, o := range q.Options {
			assert.Equal(t, i, o.Score)
		}
	}
}

func TestSession_EveryAnswerSequenceIsClassified(t *testing.T) {
	// 4^5 sequences, each must give a total in [0,15] and exactly one flag.
	var walk func(prefix []int)
	walk = func(prefix []int) {
		if len(prefix) == len(Questions) {
			s := NewSession()
			for _, o := range prefix {
				require.NoError(t, s.Answer(o))
			}
			r, err := s.Result()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, r.Total, 0)
			assert.LessOrEqual(t, r.Total, 15)
			assert.Contains(t, []Flag{FlagGreen, FlagYellow, FlagRed}, r.Flag)
			return
		}
		for o := 0; o < 4; o++ {
			walk(append(append([]int(nil), prefix...), o))
		}
	}
	walk(nil)
}

func TestSession_Flow(t *testing.T) {
	s := NewSession()
	assert.Equal(t, 5, s.Len())

	_, err := s.Result()
	assert.ErrorIs(t, err, ErrNotFinished)

	assert.ErrorIs(t, s.Answer(4), ErrInvalidOption)
	assert.ErrorIs(t, s.Answer(-1), ErrInvalidOption)
	assert.Equal(t, 0, s.Current())

	for i := 0; i < 5; i++ {
		q, ok := s.Question()
		require.True(t, ok)
		assert.Equal(t, Questions[i].Text, q.Text)
		require.NoError(t, s.Answer(3))
	}

	assert.True(t, s.Done())
	assert.ErrorIs(t, s.Answer(0), ErrFinished)

	r, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, FlagRed, r.Flag)
	assert.Equal(t, 15, r.Total)
	assert.Equal(t, "I took the LoveLab Red Flag Test and I'm a Red Flag 🚩 (15/15)", r.ShareText())

	s.Restart()
	assert.Equal(t, 0, s.Current())
	assert.Equal(t, 0, s.Total())
	assert.False(t, s.Done())
}
