package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixed(v string) VariationSource {
	return func() string { return v }
}

func TestBuild_IncludesSceneAndDirectives(t *testing.T) {
	o := NewOptimizerWithVariation(fixed("v000001"))

	got := o.Build(Input{
		Situation:   "Ministers attending climate summits while using private jets",
		Quote:       `"We offset our emissions with speeches"`,
		Description: "A minister steps off a private jet onto a red carpet made of solar panels.",
		Characters:  "minister,  aide",
		Setting:     "airport tarmac",
		Tone:        "Satirical",
		Style:       "classic",
	})

	assert.True(t, strings.HasPrefix(got, styleDirective))
	assert.Contains(t, got, "Scene: A minister steps off a private jet")
	assert.Contains(t, got, "Characters: minister, aide")
	assert.Contains(t, got, "Setting: airport tarmac")
	assert.Contains(t, got, "We offset our emissions with speeches")
	assert.NotContains(t, got, `"We offset`)
	assert.Contains(t, got, toneDirectives["satirical"])
	assert.Contains(t, got, styleDirectives["classic"])
	assert.Contains(t, got, "Avoid: "+negativeDirective)
	assert.True(t, strings.HasSuffix(got, "Variation: v000001"))
}

func TestBuild_FallsBackToSituation(t *testing.T) {
	o := NewOptimizerWithVariation(nil)

	got := o.Build(Input{Situation: "Potholes on the new expressway"})

	assert.Contains(t, got, "Scene: Potholes on the new expressway")
	assert.NotContains(t, got, "Variation:")
}

func TestBuild_NeverEmpty(t *testing.T) {
	got := NewOptimizerWithVariation(nil).Build(Input{})

	assert.NotEmpty(t, got)
	assert.Contains(t, got, "Scene: a politician")
}

func TestBuild_DeterministicWithoutVariation(t *testing.T) {
	o := NewOptimizerWithVariation(nil)
	in := Input{Description: "a ribbon cutting at a pothole", Tone: "witty"}

	assert.Equal(t, o.Build(in), o.Build(in))
}

func TestBuild_VariationChangesOutput(t *testing.T) {
	in := Input{Description: "a ribbon cutting at a pothole"}

	a := NewOptimizerWithVariation(fixed("v1")).Build(in)
	b := NewOptimizerWithVariation(fixed("v2")).Build(in)

	assert.NotEqual(t, a, b)
}

func TestBuild_TruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("a", maxDescriptionChars*2)

	got := NewOptimizerWithVariation(nil).Build(Input{Description: long})

	assert.Contains(t, got, "Scene: "+strings.Repeat("a", maxDescriptionChars)+". ")
	assert.NotContains(t, got, strings.Repeat("a", maxDescriptionChars+1))
}

func TestNewOptimizer_RandomVariation(t *testing.T) {
	got := NewOptimizer().Build(Input{Description: "x"})

	assert.Contains(t, got, "Variation: v")
}
