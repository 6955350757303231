package detect

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// HOGDetector finds people with OpenCV's HOG descriptor and the built-in
// default people detector. No model file needed, CPU only.
type HOGDetector struct {
	hog gocv.HOGDescriptor
	mu  sync.Mutex // protects inference
}

// NewHOG creates a HOG-based people detector.
func NewHOG() (*HOGDetector, error) {
	hog := gocv.NewHOGDescriptor()
	if err := hog.SetSVMDetector(gocv.HOGDefaultPeopleDetector()); err != nil {
		hog.Close()
		return nil, fmt.Errorf("detect: set people detector: %w", err)
	}
	return &HOGDetector{hog: hog}, nil
}

// Detect finds people in the JPEG image and returns normalized boxes.
func (d *HOGDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("detect: decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("detect: empty image")
	}

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	rects := d.hog.DetectMultiScale(img)

	var detections []Detection
	for _, r := range rects {
		detections = append(detections, Detection{
			X: float64(r.Min.X) / imgW,
			Y: float64(r.Min.Y) / imgH,
			W: float64(r.Dx()) / imgW,
			H: float64(r.Dy()) / imgH,
			// HOG has no per-box score; treat hits as moderately confident.
			Confidence: 0.7,
		})
	}
	return detections, nil
}

// Close releases the detector.
func (d *HOGDetector) Close() error {
	return d.hog.Close()
}
