// Shotmatch daemon: runs the tracking and guidance engine, the 2D
// detection worker and the collaborator API. With -demo it feeds the
// engine a synthetic walking subject so the full pipeline can be
// exercised without a headset attached.
package main

import (
	"context"
	"flag"
	"math"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/shotmatch/go-shotmatch/internal/config"
	"github.com/shotmatch/go-shotmatch/internal/log"
	"github.com/shotmatch/go-shotmatch/pkg/advisor"
	"github.com/shotmatch/go-shotmatch/pkg/detect"
	"github.com/shotmatch/go-shotmatch/pkg/engine"
	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
	"github.com/shotmatch/go-shotmatch/pkg/web"
)

func main() {
	port := flag.String("port", config.WebPort(), "HTTP/websocket port")
	demo := flag.Bool("demo", true, "Feed a synthetic subject instead of a live pose stream")
	detectorName := flag.String("detector", "mock", "2D detector: mock or hog")
	advisorName := flag.String("advisor", config.Advisor(), "Guidance advisor: mock, gemini or ollama")
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := engine.DefaultConfig()

	detector, err := newDetector(*detectorName)
	if err != nil {
		log.Error("detector init failed", "detector", *detectorName, "error", err)
		return
	}
	defer detector.Close()

	worker := detect.NewWorker(cfg.Detect, detector, demoFrames{})
	go worker.Run(ctx)

	eng := engine.New(cfg, worker.Latest)

	provider, err := newProvider(*advisorName)
	if err != nil {
		log.Error("advisor init failed", "advisor", *advisorName, "error", err)
		return
	}

	srv := web.NewServer(*port, eng, provider)
	srv.StartAsync()
	defer srv.Shutdown()

	log.Info("shotmatch running", "port", *port, "detector", *detectorName, "advisor", provider.Name(), "demo", *demo)

	if *demo {
		runDemo(ctx, eng, srv)
	} else {
		// Live mode waits for the pose collaborator to push frames
		// through the API surface; nothing to drive locally.
		<-ctx.Done()
	}

	log.Info("shotmatch stopped")
}

func newDetector(name string) (detect.Detector, error) {
	if name == "hog" {
		return detect.NewHOG()
	}
	// The scripted detection matches the demo subject roughly centered
	// in a 1080p viewport.
	return detect.NewMock([]detect.Detection{
		{X: 0.42, Y: 0.20, W: 0.16, H: 0.60, Confidence: 0.85},
	}), nil
}

func newProvider(name string) (advisor.Provider, error) {
	switch name {
	case "gemini":
		return advisor.NewGemini(config.GeminiAPIKeyRequired(), config.DefaultAdvisorModel)
	case "ollama":
		return advisor.NewOllama(config.OllamaURL(), config.OllamaModel())
	default:
		return advisor.NewMock(), nil
	}
}

// demoFrames satisfies detect.FrameSource when no camera is attached.
// The mock detector ignores the pixels.
type demoFrames struct{}

func (demoFrames) CaptureJPEG() ([]byte, error) { return []byte{}, nil }

// runDemo drives the engine at 30 Hz with a subject drifting slowly
// side to side two meters in front of a head-height camera, and
// publishes snapshots to websocket subscribers at 10 Hz.
func runDemo(ctx context.Context, eng *engine.Engine, srv *web.Server) {
	anchor := uuid.New()
	floor := subject.Plane{
		AnchorID:  uuid.New(),
		Class:     subject.PlaneFloor,
		Transform: geom.PoseAt(r3.Vec{X: 0, Y: 0, Z: -2}),
	}
	cam := geom.Camera{
		Pose:        geom.PoseAt(r3.Vec{X: 0, Y: 1.5, Z: 0}),
		VerticalFOV: 60 * math.Pi / 180,
		Viewport:    geom.Viewport{Width: 1920, Height: 1080},
	}

	frames := time.NewTicker(33 * time.Millisecond)
	defer frames.Stop()
	publish := time.NewTicker(100 * time.Millisecond)
	defer publish.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-frames.C:
			t := time.Since(start).Seconds()
			x := 0.6 * math.Sin(t/4)
			eng.ProcessFrame(engine.FrameInput{
				Camera:    cam,
				Light:     engine.LightEstimate{Lux: 320, Kelvin: 5200},
				Skeletons: []subject.Skeleton{demoSkeleton(anchor, x)},
				Planes:    []subject.Plane{floor},
			})
		case <-publish.C:
			srv.PublishState(eng.Snapshot())
		}
	}
}

func demoSkeleton(anchor uuid.UUID, x float64) subject.Skeleton {
	const z = -2.0
	return subject.Skeleton{
		AnchorID: anchor,
		Joints: map[subject.JointName]r3.Vec{
			subject.JointHead:          {X: x, Y: 1.70, Z: z},
			subject.JointNeck:          {X: x, Y: 1.52, Z: z},
			subject.JointSpine:         {X: x, Y: 1.20, Z: z},
			subject.JointRoot:          {X: x, Y: 0.95, Z: z},
			subject.JointLeftShoulder:  {X: x - 0.20, Y: 1.45, Z: z},
			subject.JointRightShoulder: {X: x + 0.20, Y: 1.45, Z: z},
			subject.JointLeftFoot:      {X: x - 0.12, Y: 0.02, Z: z},
			subject.JointRightFoot:     {X: x + 0.12, Y: 0.02, Z: z},
		},
		Transform: geom.PoseAt(r3.Vec{X: x, Y: 0.95, Z: z}),
	}
}
