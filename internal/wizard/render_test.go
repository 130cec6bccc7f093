package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdesk/internal/taxonomy"
)

func testTaxonomy() *taxonomy.Taxonomy {
	return taxonomy.New([]taxonomy.Grade{
		{Name: "3학년", Subjects: []taxonomy.Subject{
			{Name: "수학", Categories: []taxonomy.Category{
				{Name: "수와 연산", Standards: []string{"세 자리 수를 읽고 쓸 수 있다"}},
			}},
		}},
	})
}

func TestRender_OptionsPerStep(t *testing.T) {
	tax := testTaxonomy()
	want := [][]string{
		{"3학년"},
		{"수학"},
		{"수와 연산"},
		{"세 자리 수를 읽고 쓸 수 있다"},
	}
	s := New()
	for k := 0; k < 4; k++ {
		v := Render(s, tax, true)
		assert.Equal(t, want[k], v.Options, "step %d", k)
		assert.Equal(t, Step(k).String(), v.StepName)
		assert.True(t, v.CanGenerate)
		s, _ = Apply(s, Advance{Value: want[k][0]})
	}
	assert.Nil(t, Render(s, tax, true).Options)
}

func TestRender_NilTaxonomy(t *testing.T) {
	s := New()
	s.SetQuestion(1, "Q1", "")
	v := Render(s, nil, true)
	assert.Nil(t, v.Options)
	assert.False(t, v.CanGenerate)
	assert.Equal(t, 1, v.FilledCount)
}

func TestRender_NoGenerator(t *testing.T) {
	v := Render(New(), testTaxonomy(), false)
	assert.False(t, v.CanGenerate)
	assert.Equal(t, []string{"3학년"}, v.Options)
}

func TestRender_EmptyCategoryBlocksAdvance(t *testing.T) {
	tax := taxonomy.New([]taxonomy.Grade{
		{Name: "3학년", Subjects: []taxonomy.Subject{
			{Name: "수학", Categories: []taxonomy.Category{
				{Name: "측정"},
			}},
		}},
	})
	s := New()
	for _, v := range []string{"3학년", "수학", "측정"} {
		s, _ = Apply(s, Advance{Value: v})
	}
	require.Equal(t, StepStandard, s.Step)

	v := Render(s, tax, true)
	assert.Empty(t, v.Options)

	s, eff := Apply(s, Advance{Value: ""})
	assert.Equal(t, StepStandard, s.Step)
	assert.Equal(t, EffectNone, eff)
}

type stubGenerator struct {
	text  string
	err   error
	calls []string
}

func (g *stubGenerator) Generate(_ context.Context, standard string) (string, error) {
	g.calls = append(g.calls, standard)
	return g.text, g.err
}

func TestDispatch_ScenarioPlaceInSlotTwo(t *testing.T) {
	gen := &stubGenerator{text: "T"}
	ctx := context.Background()

	s := New()
	for _, v := range path {
		s = Dispatch(ctx, s, Advance{Value: v}, gen)
	}

	require.Equal(t, []string{"세 자리 수를 읽고 쓸 수 있다"}, gen.calls)
	require.Equal(t, StepReview, s.Step)
	require.Equal(t, "T", s.Generated)

	s = Dispatch(ctx, s, Place{Slot: 2}, gen)
	assert.Equal(t, [NumSlots]string{"", "T", ""}, s.Questions)
	assert.Empty(t, s.Generated)
	assert.Equal(t, StepStandard, s.Step)
	assert.Len(t, gen.calls, 1)
}

func TestDispatch_GenerationError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("empty generation")}
	ctx := context.Background()

	s := New()
	for _, v := range path {
		s = Dispatch(ctx, s, Advance{Value: v}, gen)
	}

	assert.Equal(t, StepReview, s.Step)
	assert.Empty(t, s.Generated)
	assert.False(t, s.Busy)
	assert.Equal(t, "empty generation", s.Err)
	assert.Len(t, gen.calls, 1)

	gen.err = nil
	gen.text = "retry"
	s = Dispatch(ctx, s, Generate{}, gen)
	assert.Equal(t, "retry", s.Generated)
	assert.Len(t, gen.calls, 2)
}
