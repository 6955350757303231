// Package advisor talks to the external recommendation service. The
// service looks at the live frame (and optionally a reference shot) and
// returns a structured 6-DOF adjustment; everything it says is untrusted
// until the guidance validator has clamped it.
package advisor

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/shotmatch/go-shotmatch/pkg/guidance"
)

// Sentinel errors for the advisor package.
var (
	// ErrMissingAPIKey indicates the provider credential was not set.
	ErrMissingAPIKey = errors.New("advisor: API key is required")

	// ErrNoResponse indicates the service returned no usable content.
	ErrNoResponse = errors.New("advisor: empty response from service")
)

// Request carries the scene context for one guidance activation.
type Request struct {
	// Frame is the current camera view as JPEG.
	Frame []byte

	// Reference is the target composition to reproduce, if any.
	Reference []byte

	// Formatted scene metrics, included in the prompt.
	Distance     string
	CameraHeight string

	// Ambient light estimate from the pose collaborator.
	LightLux    float64
	LightKelvin float64
}

// Provider produces one recommendation per guidance activation.
type Provider interface {
	Name() string
	Recommend(ctx context.Context, req Request) (*guidance.StructuredResponse, error)
}

// codeFence strips markdown fences models like to wrap JSON in.
var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// parseResponse extracts and decodes the JSON document from raw model
// output. Malformed documents surface as *guidance.DecodeError.
func parseResponse(text string) (*guidance.StructuredResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoResponse
	}
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	} else if i := strings.Index(text, "{"); i > 0 {
		// Some models prepend prose before the document.
		text = text[i:]
	}
	return guidance.Decode([]byte(text))
}
