package watermark

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	return buf.Bytes()
}

func TestApplyStampsBottomRight(t *testing.T) {
	base := imaging.New(400, 300, color.White)
	signature := imaging.New(100, 50, color.Black)

	w := NewFromImage(signature, Options{Opacity: 1})
	out, err := w.Apply(encodePNG(t, base))
	require.NoError(t, err)

	decoded, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, base.Bounds(), decoded.Bounds())

	// 15% of 400 = 60px wide, margin 8px
	r, g, b, _ := decoded.At(400-8-5, 300-8-5).RGBA()
	assert.Zero(t, r+g+b, "corner should be covered by the signature")

	r, g, b, _ = decoded.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff*3), r+g+b, "top-left should be untouched")
}

func TestApplyMissingSignature(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing.png"), Options{})

	_, err := w.Apply(encodePNG(t, imaging.New(10, 10, color.White)))
	assert.ErrorContains(t, err, "failed to load signature")
}

func TestApplyRejectsGarbage(t *testing.T) {
	w := NewFromImage(imaging.New(4, 4, color.Black), Options{})

	_, err := w.Apply([]byte("not an image"))
	assert.ErrorContains(t, err, "failed to decode")
}

func TestApplyLoadsSignatureFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signature.png")
	require.NoError(t, imaging.Save(imaging.New(20, 10, color.Black), path))

	out, err := New(path, Options{}).Apply(encodePNG(t, imaging.New(200, 100, color.White)))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
