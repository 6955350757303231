// Overlay simulator: subscribes to the daemon's state stream and renders
// the guidance overlay as terminal output. Stands in for the real
// rendering collaborator during development.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/shotmatch/go-shotmatch/pkg/engine"
)

func main() {
	addr := flag.String("addr", "localhost:8090", "Daemon address")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/state", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s\n", url)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			var state engine.GuidanceState
			if err := json.Unmarshal(data, &state); err != nil {
				log.Printf("decode: %v", err)
				continue
			}
			render(state)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
	case <-sigChan:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

func render(state engine.GuidanceState) {
	if !state.Active {
		fmt.Printf("[%s] overlay off  distance=%s height=%s\n",
			state.TrackingState, state.Distance.Text, state.CameraHeight.Text)
		return
	}

	line := fmt.Sprintf("[%s] score=%.2f", state.TrackingState, state.AlignmentScore)
	if state.SubjectRect != nil {
		r := state.SubjectRect
		line += fmt.Sprintf("  subject=(%.0f,%.0f %.0fx%.0f)", r.MinX, r.MinY, r.Width(), r.Height())
	}
	if state.TargetRect != nil {
		r := state.TargetRect
		line += fmt.Sprintf("  target=(%.0f,%.0f %.0fx%.0f)", r.MinX, r.MinY, r.Width(), r.Height())
	}
	if state.Summary != "" {
		line += "  " + state.Summary
	}
	fmt.Println(line)

	for _, w := range state.Warnings {
		fmt.Printf("  ! %s\n", w.String())
	}
}
