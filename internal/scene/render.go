package scene

import (
	"fmt"
	"strings"
)

const (
	captionBoxY     = 500
	captionFirstY   = 540
	captionLineStep = 28
	fallbackCaption = "No comment."
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// renders the full placeholder cartoon for a generation request.
// the dialogue is used as caption, or the situation when dialogue is empty
func RenderPlaceholder(situation, dialogue, description string) string {
	lines := CaptionLines(dialogue)
	if len(lines) == 0 {
		lines = CaptionLines(situation)
	}

	return Render(Classify(situation, description), lines)
}

// renders a complete SVG document for the scene and caption lines.
// output is byte-identical for identical input
func Render(kind Kind, lines []string) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)
	b.WriteString(`<rect x="0" y="0" width="800" height="600" fill="#fdfbf5"/>` + "\n")

	switch kind {
	case KindInfrastructure:
		drawInfrastructure(&b)
	case KindSocialMedia:
		drawSocialMedia(&b)
	case KindOpposition:
		drawOpposition(&b)
	default:
		drawOffice(&b)
	}

	drawCaption(&b, lines)
	b.WriteString(`<rect x="2" y="2" width="796" height="596" fill="none" stroke="#222" stroke-width="4"/>` + "\n")
	b.WriteString("</svg>\n")

	return b.String()
}

func drawCaption(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		lines = []string{fallbackCaption}
	}

	fmt.Fprintf(b, `<rect x="20" y="%d" width="760" height="84" rx="8" fill="#ffffff" stroke="#222" stroke-width="2"/>`+"\n", captionBoxY)

	for i, line := range lines {
		if i == MaxCaptionLines {
			break
		}

		fmt.Fprintf(b, `<text x="400" y="%d" text-anchor="middle" font-family="Georgia, serif" font-size="19" font-style="italic" fill="#111">%s</text>`+"\n",
			captionFirstY+i*captionLineStep, xmlEscaper.Replace(line))
	}
}

// figure describes a stick-and-blob character
type figure struct {
	x, y   int // feet position
	scale  float64
	suit   string
	tie    string
	mood   string // "smug", "angry", "worried"
	armsUp bool
}

func drawFigure(b *strings.Builder, f figure) {
	s := func(v float64) string { return fmt.Sprintf("%.1f", v*f.scale) }
	x, y := float64(f.x), float64(f.y)

	fmt.Fprintf(b, `<g transform="translate(%.0f %.0f)">`+"\n", x, y)

	// legs
	fmt.Fprintf(b, `<line x1="-%s" y1="0" x2="-%s" y2="-%s" stroke="#222" stroke-width="%s"/>`+"\n", s(12), s(8), s(60), s(6))
	fmt.Fprintf(b, `<line x1="%s" y1="0" x2="%s" y2="-%s" stroke="#222" stroke-width="%s"/>`+"\n", s(12), s(8), s(60), s(6))

	// body
	fmt.Fprintf(b, `<rect x="-%s" y="-%s" width="%s" height="%s" rx="%s" fill="%s" stroke="#222" stroke-width="2"/>`+"\n",
		s(28), s(140), s(56), s(84), s(14), f.suit)
	if f.tie != "" {
		fmt.Fprintf(b, `<polygon points="0,-%s -%s,-%s 0,-%s %s,-%s" fill="%s"/>`+"\n",
			s(138), s(6), s(110), s(90), s(6), s(110), f.tie)
	}

	// arms
	if f.armsUp {
		fmt.Fprintf(b, `<line x1="-%s" y1="-%s" x2="-%s" y2="-%s" stroke="#222" stroke-width="%s"/>`+"\n", s(26), s(128), s(52), s(170), s(5))
		fmt.Fprintf(b, `<line x1="%s" y1="-%s" x2="%s" y2="-%s" stroke="#222" stroke-width="%s"/>`+"\n", s(26), s(128), s(52), s(170), s(5))
	} else {
		fmt.Fprintf(b, `<line x1="-%s" y1="-%s" x2="-%s" y2="-%s" stroke="#222" stroke-width="%s"/>`+"\n", s(26), s(128), s(44), s(80), s(5))
		fmt.Fprintf(b, `<line x1="%s" y1="-%s" x2="%s" y2="-%s" stroke="#222" stroke-width="%s"/>`+"\n", s(26), s(128), s(44), s(80), s(5))
	}

	// oversized head, the cartoonist's trademark
	fmt.Fprintf(b, `<circle cx="0" cy="-%s" r="%s" fill="#f2c9a0" stroke="#222" stroke-width="2"/>`+"\n", s(176), s(38))
	fmt.Fprintf(b, `<circle cx="-%s" cy="-%s" r="%s" fill="#222"/>`+"\n", s(13), s(182), s(4))
	fmt.Fprintf(b, `<circle cx="%s" cy="-%s" r="%s" fill="#222"/>`+"\n", s(13), s(182), s(4))

	switch f.mood {
	case "angry":
		fmt.Fprintf(b, `<line x1="-%s" y1="-%s" x2="-%s" y2="-%s" stroke="#222" stroke-width="3"/>`+"\n", s(22), s(196), s(6), s(190))
		fmt.Fprintf(b, `<line x1="%s" y1="-%s" x2="%s" y2="-%s" stroke="#222" stroke-width="3"/>`+"\n", s(22), s(196), s(6), s(190))
		fmt.Fprintf(b, `<path d="M -%s -%s Q 0 -%s %s -%s" fill="none" stroke="#222" stroke-width="3"/>`+"\n", s(14), s(156), s(168), s(14), s(156))
	case "worried":
		fmt.Fprintf(b, `<ellipse cx="0" cy="-%s" rx="%s" ry="%s" fill="#222"/>`+"\n", s(158), s(7), s(9))
	default:
		fmt.Fprintf(b, `<path d="M -%s -%s Q 0 -%s %s -%s" fill="none" stroke="#222" stroke-width="3"/>`+"\n", s(16), s(164), s(150), s(16), s(164))
	}

	b.WriteString("</g>\n")
}

func drawSign(b *strings.Builder, x, y int, label string) {
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#5a3d1e" stroke-width="6"/>`+"\n", x, y, x, y+110)
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="150" height="44" fill="#ffd23f" stroke="#222" stroke-width="2"/>`+"\n", x-75, y-22)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" font-family="Arial, sans-serif" font-size="14" font-weight="bold" fill="#222">%s</text>`+"\n",
		x, y+5, xmlEscaper.Replace(label))
}

// potholed street, a minister inaugurating the crater
func drawInfrastructure(b *strings.Builder) {
	b.WriteString(`<rect x="0" y="0" width="800" height="300" fill="#cfe8f7"/>` + "\n")
	b.WriteString(`<rect x="0" y="300" width="800" height="200" fill="#8a8a8a"/>` + "\n")
	b.WriteString(`<line x1="0" y1="400" x2="800" y2="400" stroke="#f5f5f5" stroke-width="6" stroke-dasharray="40 30"/>` + "\n")
	b.WriteString(`<ellipse cx="420" cy="430" rx="150" ry="38" fill="#3b3b3b" stroke="#222" stroke-width="3"/>` + "\n")
	b.WriteString(`<ellipse cx="420" cy="436" rx="120" ry="24" fill="#5c7d99"/>` + "\n")

	// commuter up to the neck in the pothole
	b.WriteString(`<circle cx="470" cy="420" r="22" fill="#f2c9a0" stroke="#222" stroke-width="2"/>` + "\n")
	b.WriteString(`<ellipse cx="470" cy="428" rx="6" ry="7" fill="#222"/>` + "\n")

	// ribbon across the crater
	b.WriteString(`<line x1="250" y1="390" x2="590" y2="390" stroke="#d62828" stroke-width="5"/>` + "\n")
	b.WriteString(`<circle cx="420" cy="390" r="12" fill="#d62828"/>` + "\n")

	drawFigure(b, figure{x: 200, y: 470, scale: 1, suit: "#ffffff", tie: "#ff9933", mood: "smug"})
	drawSign(b, 680, 250, "ROAD WORK SINCE 2009")
}

// politician live-streaming while the crowd holds up phones
func drawSocialMedia(b *strings.Builder) {
	b.WriteString(`<rect x="0" y="0" width="800" height="340" fill="#efe3ff"/>` + "\n")
	b.WriteString(`<rect x="0" y="340" width="800" height="160" fill="#d9c8a9"/>` + "\n")

	// ring light
	b.WriteString(`<circle cx="560" cy="200" r="70" fill="none" stroke="#fff7c2" stroke-width="16"/>` + "\n")
	b.WriteString(`<line x1="560" y1="270" x2="560" y2="470" stroke="#444" stroke-width="5"/>` + "\n")

	drawFigure(b, figure{x: 380, y: 470, scale: 1.05, suit: "#2b2d42", tie: "#ef233c", mood: "smug", armsUp: true})

	// phone held high
	b.WriteString(`<rect x="418" y="236" width="34" height="58" rx="5" fill="#111" stroke="#555" stroke-width="2"/>` + "\n")
	b.WriteString(`<circle cx="435" cy="246" r="3" fill="#e63946"/>` + "\n")

	// floating reactions
	for i, x := range []int{110, 180, 250, 640, 710} {
		y := 90 + (i%3)*45
		fmt.Fprintf(b, `<path d="M %d %d c -10 -14 -30 -2 0 22 c 30 -24 10 -36 0 -22 z" fill="#e63946"/>`+"\n", x, y)
	}

	fmt.Fprintf(b, `<text x="120" y="60" font-family="Arial, sans-serif" font-size="22" font-weight="bold" fill="#7b2cbf">%s</text>`+"\n",
		xmlEscaper.Replace("LIVE • 2.3M watching"))

	// tiny followers
	for i := 0; i < 6; i++ {
		drawFigure(b, figure{x: 80 + i*40, y: 490, scale: 0.35, suit: "#8d99ae", mood: "worried"})
	}
}

// two front benches trading accusations across the aisle
func drawOpposition(b *strings.Builder) {
	b.WriteString(`<rect x="0" y="0" width="800" height="360" fill="#e8efe1"/>` + "\n")
	b.WriteString(`<rect x="0" y="360" width="800" height="140" fill="#386641"/>` + "\n")

	// chamber arches
	for _, x := range []int{100, 300, 500, 700} {
		fmt.Fprintf(b, `<path d="M %d 300 L %d 140 Q %d 80 %d 140 L %d 300" fill="#fefae0" stroke="#6a994e" stroke-width="3"/>`+"\n",
			x-60, x-60, x, x+60, x+60)
	}

	// speaker's podium with the policy file
	b.WriteString(`<rect x="350" y="330" width="100" height="120" fill="#6f4518" stroke="#222" stroke-width="2"/>` + "\n")
	b.WriteString(`<rect x="362" y="300" width="76" height="40" fill="#ffffff" stroke="#222" stroke-width="2"/>` + "\n")
	b.WriteString(`<text x="400" y="326" text-anchor="middle" font-family="Arial, sans-serif" font-size="13" font-weight="bold" fill="#222">POLICY</text>` + "\n")

	drawFigure(b, figure{x: 190, y: 470, scale: 1, suit: "#ffffff", tie: "#ff9933", mood: "angry", armsUp: true})
	drawFigure(b, figure{x: 610, y: 470, scale: 1, suit: "#1d3557", tie: "#a8dadc", mood: "angry", armsUp: true})

	// pointing fingers meet over the podium
	b.WriteString(`<line x1="242" y1="300" x2="340" y2="260" stroke="#222" stroke-width="5"/>` + "\n")
	b.WriteString(`<line x1="558" y1="300" x2="460" y2="260" stroke="#222" stroke-width="5"/>` + "\n")
}

// minister behind a desk of unread files, citizen waiting in front
func drawOffice(b *strings.Builder) {
	b.WriteString(`<rect x="0" y="0" width="800" height="380" fill="#f1e4c8"/>` + "\n")
	b.WriteString(`<rect x="0" y="380" width="800" height="120" fill="#a47148"/>` + "\n")

	// window
	b.WriteString(`<rect x="560" y="60" width="170" height="140" fill="#bde0fe" stroke="#6c584c" stroke-width="6"/>` + "\n")
	b.WriteString(`<line x1="645" y1="60" x2="645" y2="200" stroke="#6c584c" stroke-width="4"/>` + "\n")

	// portrait on the wall
	b.WriteString(`<rect x="90" y="70" width="90" height="110" fill="#fff" stroke="#b08968" stroke-width="6"/>` + "\n")
	b.WriteString(`<circle cx="135" cy="115" r="24" fill="#f2c9a0" stroke="#222" stroke-width="2"/>` + "\n")

	drawFigure(b, figure{x: 300, y: 420, scale: 1, suit: "#ffffff", tie: "#ff9933", mood: "smug"})

	// desk hides the minister's legs
	b.WriteString(`<rect x="170" y="330" width="300" height="130" fill="#7f5539" stroke="#222" stroke-width="3"/>` + "\n")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="70" height="16" fill="#e9d8a6" stroke="#222" stroke-width="1"/>`+"\n", 380, 312-i*16)
	}
	b.WriteString(`<text x="415" y="232" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" fill="#222">PENDING</text>` + "\n")

	drawFigure(b, figure{x: 620, y: 480, scale: 0.8, suit: "#b5838d", mood: "worried"})
}
