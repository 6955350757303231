package advisor

import "fmt"

// buildPrompt renders the instruction sent with the frame. The schema in
// the prompt must match what guidance.Decode accepts.
func buildPrompt(req Request) string {
	prompt := `You are a photography assistant. Compare the current camera view with the target composition and recommend how the operator should move the camera.

Respond with ONLY a JSON document in exactly this schema:
{"adjustments":{"translation":{"x":{"direction":"left|right|none","magnitude":<number or null>,"unit":"m"},"y":{"direction":"up|down|none","magnitude":<number or null>,"unit":"m"},"z":{"direction":"forward|back|none","magnitude":<number or null>,"unit":"m"}},"rotation":{"yaw":{"direction":"left|right|none","magnitude":<number or null>,"unit":"deg"},"pitch":{"direction":"up|down|none","magnitude":<number or null>,"unit":"deg"},"roll":{"direction":"clockwise|counterclockwise|none","magnitude":<number or null>,"unit":"deg"}},"framing":{"subject_position":"center|left_third|right_third|top_third|bottom_third","composition_rule":"<rule>","framing_type":"close_up|medium_shot|full_body|environmental","ideal_subject_percentage":<0..1>}},"summary":"<one sentence>","confidence":<0..1>}

Use null magnitude for axes that need no change. Keep magnitudes realistic for a handheld operator.`

	if req.Distance != "" {
		prompt += fmt.Sprintf("\nCurrent subject distance: %s.", req.Distance)
	}
	if req.CameraHeight != "" {
		prompt += fmt.Sprintf(" Camera height: %s.", req.CameraHeight)
	}
	if req.LightLux > 0 {
		prompt += fmt.Sprintf(" Ambient light: %.0f lux at %.0f K.", req.LightLux, req.LightKelvin)
	}
	return prompt
}
