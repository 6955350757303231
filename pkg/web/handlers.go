package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/shotmatch/go-shotmatch/internal/log"
	"github.com/shotmatch/go-shotmatch/pkg/advisor"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
	"github.com/shotmatch/go-shotmatch/pkg/hub"
)

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.engine.Snapshot())
}

func (s *Server) handleWarnings(c *fiber.Ctx) error {
	s.warningsMu.RLock()
	out := make([]WarningEntry, len(s.warnings))
	copy(out, s.warnings)
	s.warningsMu.RUnlock()
	return c.JSON(fiber.Map{"warnings": out})
}

// handleActivateGuidance requests a fresh recommendation from the
// advisor, validates it, and activates it on the engine. A malformed
// advisor response is reported as retryable so the caller can simply
// ask again.
func (s *Server) handleActivateGuidance(c *fiber.Ctx) error {
	reqID := uuid.New()
	snap := s.engine.Snapshot()

	req := advisor.Request{
		Distance:     snap.Distance.Text,
		CameraHeight: snap.CameraHeight.Text,
		LightLux:     snap.Light.Lux,
		LightKelvin:  snap.Light.Kelvin,
	}
	if s.OnCaptureFrame != nil {
		frame, err := s.OnCaptureFrame()
		if err != nil {
			log.Warn("web: frame capture failed", "error", err)
		} else {
			req.Frame = frame
		}
	}
	req.Reference = s.Reference

	warnings, err := s.engine.RequestGuidance(c.Context(), s.advisor, req)
	if err != nil {
		var decodeErr *guidance.DecodeError
		if errors.As(err, &decodeErr) {
			log.Warn("web: malformed recommendation", "request_id", reqID, "error", decodeErr)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"request_id": reqID,
				"error":      decodeErr.Error(),
				"retryable":  true,
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"request_id": reqID,
			"error":      err.Error(),
			"retryable":  false,
		})
	}

	log.Info("web: guidance activated", "request_id", reqID, "provider", s.advisor.Name(), "warnings", len(warnings))
	s.publishWarnings(warnings)
	s.PublishState(s.engine.Snapshot())

	return c.JSON(fiber.Map{
		"request_id": reqID,
		"active":     true,
		"warnings":   warnings,
	})
}

func (s *Server) handleDeactivateGuidance(c *fiber.Ctx) error {
	s.engine.ToggleOff()
	s.PublishState(s.engine.Snapshot())
	return c.JSON(fiber.Map{"active": false})
}

func (s *Server) handleStateWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)

	// Send the current snapshot immediately so a new subscriber does
	// not wait for the next recomputation.
	if err := conn.WriteJSON(s.engine.Snapshot()); err != nil {
		log.Debug("web: initial state send failed", "error", err)
	}

	client.Run()
}

func (s *Server) handleWarningsWS(conn *websocket.Conn) {
	hub.NewClient(s.warningHub, conn).Run()
}
