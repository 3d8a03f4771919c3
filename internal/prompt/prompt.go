// Package prompt turns a scene description into an instruction string tuned
// for the text-to-image models behind internal/imagegen.
package prompt

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"codeberg.org/satirist/server/internal/logger"
)

// holds everything known about the cartoon being requested
type Input struct {
	Situation   string
	Quote       string
	Description string
	Characters  string
	Setting     string
	Tone        string
	Style       string
}

// the diffusion models we target draw cleaner cartoons when the style block
// comes first and the exclusions come last
const (
	styleDirective = "single-panel editorial cartoon, bold black ink outlines, flat cel shading, " +
		"limited warm palette, exaggerated caricature with oversized heads, simple readable characters, " +
		"clean white background, newspaper cartoon aesthetic"

	negativeDirective = "no text, no letters, no speech bubbles, no captions, no watermark, no signature, " +
		"no border, no frame, no multiple panels, no photorealism, no 3d render, no blurry details"

	maxDescriptionChars = 600
)

var toneDirectives = map[string]string{
	"satirical": "biting satire, ironic contrast between words and deeds",
	"humorous":  "light-hearted humor, playful exaggeration",
	"sarcastic": "deadpan sarcasm, smug expressions",
	"dark":      "dark humor, grim irony, muted colors",
	"witty":     "clever visual pun, understated wit",
}

var styleDirectives = map[string]string{
	"classic":    "classic Indian newspaper cartoon style, common man observer in the corner",
	"modern":     "modern flat vector illustration, thick outlines",
	"sketch":     "pen and ink sketch, cross-hatching, minimal color",
	"watercolor": "loose watercolor washes over ink lines",
}

// produces the random token appended to each prompt
type VariationSource func() string

// builds image prompts
type Optimizer struct {
	variation VariationSource
}

// creates an optimizer with a random variation token per call
func NewOptimizer() *Optimizer {
	return &Optimizer{variation: randomVariation}
}

// creates an optimizer with a caller supplied variation source (nil disables it)
func NewOptimizerWithVariation(v VariationSource) *Optimizer {
	return &Optimizer{variation: v}
}

// assembles the model instruction string. always returns a non-empty prompt
func (o *Optimizer) Build(in Input) string {
	var b strings.Builder

	b.WriteString(styleDirective)
	b.WriteString(". ")

	if d := styleDirectives[strings.ToLower(strings.TrimSpace(in.Style))]; d != "" {
		b.WriteString(d)
		b.WriteString(". ")
	}

	if d := toneDirectives[strings.ToLower(strings.TrimSpace(in.Tone))]; d != "" {
		b.WriteString(d)
		b.WriteString(". ")
	}

	scene := firstNonEmpty(in.Description, in.Situation)
	if scene == "" {
		scene = "a politician making grand promises in front of a skeptical citizen"
	}

	b.WriteString("Scene: ")
	b.WriteString(truncate(collapseSpace(scene), maxDescriptionChars))
	b.WriteString(". ")

	if chars := collapseSpace(in.Characters); chars != "" {
		b.WriteString("Characters: ")
		b.WriteString(chars)
		b.WriteString(". ")
	}

	if setting := collapseSpace(in.Setting); setting != "" {
		b.WriteString("Setting: ")
		b.WriteString(setting)
		b.WriteString(". ")
	}

	if quote := collapseSpace(in.Quote); quote != "" {
		// the model should act the joke out, never letter it
		fmt.Fprintf(&b, "Body language conveys the idea: %s. ", strings.Trim(quote, `"“” `))
	}

	b.WriteString("Avoid: ")
	b.WriteString(negativeDirective)
	b.WriteString(".")

	if o.variation != nil {
		if v := o.variation(); v != "" {
			b.WriteString(" Variation: ")
			b.WriteString(v)
		}
	}

	out := b.String()
	logger.Debug("built image prompt", "length", len(out))

	return out
}

// negative prompt for providers that accept it separately
func NegativePrompt() string {
	return negativeDirective
}

func randomVariation() string {
	return fmt.Sprintf("v%06d", rand.IntN(1_000_000))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}

	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}

	return strings.TrimSpace(string(r[:max]))
}
