// Package web exposes the engine to its collaborators: a REST snapshot
// and websocket push for the rendering layer, and the warning stream for
// the UI layer.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/shotmatch/go-shotmatch/internal/log"
	"github.com/shotmatch/go-shotmatch/pkg/advisor"
	"github.com/shotmatch/go-shotmatch/pkg/engine"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
	"github.com/shotmatch/go-shotmatch/pkg/hub"
)

// WarningEntry is one surfaced safety warning with display metadata.
type WarningEntry struct {
	Time     string `json:"time"`
	Severity string `json:"severity"`
	Message  string `json:"message"`

	Warning guidance.SafetyWarning `json:"warning"`
}

// Server is the collaborator-facing HTTP/websocket surface.
type Server struct {
	app  *fiber.App
	port string

	engine  *engine.Engine
	advisor advisor.Provider

	// OnCaptureFrame returns the current camera frame as JPEG for
	// guidance requests. Optional.
	OnCaptureFrame func() ([]byte, error)

	// Reference is the target composition image, if one is loaded.
	Reference []byte

	warnings   []WarningEntry
	warningsMu sync.RWMutex

	stateHub   *hub.Hub
	warningHub *hub.Hub
}

// NewServer creates the collaborator surface around an engine.
func NewServer(port string, eng *engine.Engine, provider advisor.Provider) *Server {
	s := &Server{
		port:       port,
		engine:     eng,
		advisor:    provider,
		warnings:   make([]WarningEntry, 0, maxWarningHistory),
		stateHub:   hub.New("state"),
		warningHub: hub.New("warnings"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "shotmatch",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/warnings", s.handleWarnings)
	api.Post("/guidance", s.handleActivateGuidance)
	api.Delete("/guidance", s.handleDeactivateGuidance)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/warnings", websocket.New(s.handleWarningsWS))

	s.app = app
	return s
}

const maxWarningHistory = 100

// Start runs the hubs and the HTTP listener. Blocks.
func (s *Server) Start() error {
	log.Info("web: listening", "port", s.port)
	go s.stateHub.Run()
	go s.warningHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web: server error", "error", err)
		}
	}()
}

// Shutdown stops the HTTP listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PublishState broadcasts a guidance snapshot to websocket subscribers.
// Call after each engine recomputation, or on a modest timer.
func (s *Server) PublishState(state engine.GuidanceState) {
	s.stateHub.BroadcastJSON(state)
}

// publishWarnings records and broadcasts validation warnings.
func (s *Server) publishWarnings(warnings []guidance.SafetyWarning) {
	now := time.Now().Format("15:04:05")
	s.warningsMu.Lock()
	for _, w := range warnings {
		entry := WarningEntry{
			Time:     now,
			Severity: w.Severity(),
			Message:  w.String(),
			Warning:  w,
		}
		s.warnings = append(s.warnings, entry)
		if len(s.warnings) > maxWarningHistory {
			s.warnings = s.warnings[1:]
		}
		s.warningHub.BroadcastJSON(entry)
	}
	s.warningsMu.Unlock()
}
