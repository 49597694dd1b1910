package disease

import (
	"bytes"
	"fmt"
	"image"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Preprocessing constants fixed at training time. The normalization values
// must be preserved bit-for-bit for scoring parity with the trained model.
const inputSize = 128

var (
	channelMean = [3]float64{0.485, 0.456, 0.406}
	channelStd  = [3]float64{0.229, 0.224, 0.225}
)

// AllowedExtensions is the allow-list of accepted image encodings.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

// Preprocess decodes image bytes, forces three-channel color, resizes to the
// model's square input resolution and applies the per-channel normalization.
// The output is a flat CHW tensor ready for the scorer.
func Preprocess(data []byte) ([]float64, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Force RGB at the target resolution in one pass. Bilinear matches the
	// training-time resize closely enough for stable predictions.
	rgba := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.BiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), draw.Src, nil)

	tensor := make([]float64, 3*inputSize*inputSize)
	plane := inputSize * inputSize
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			i := rgba.PixOffset(x, y)
			px := y*inputSize + x
			for c := 0; c < 3; c++ {
				v := float64(rgba.Pix[i+c]) / 255.0
				tensor[c*plane+px] = (v - channelMean[c]) / channelStd[c]
			}
		}
	}
	return tensor, nil
}

// ObjectName builds the storage path fragment for a processed image.
func ObjectName(userID, ext string) string {
	return fmt.Sprintf("disease_images/%s/%s.%s", userID, time.Now().UTC().Format("20060102_150405"), ext)
}
