// paintwatch - follow a running air-paint dashboard from the terminal,
// or send it a single key.
//
//	paintwatch                   stream status lines
//	paintwatch -key clear        clear the canvas and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/teslashibe/go-airpaint/internal/config"
	"github.com/teslashibe/go-airpaint/internal/httpc"
	"github.com/teslashibe/go-airpaint/internal/log"
	"github.com/teslashibe/go-airpaint/pkg/paint"
	"github.com/teslashibe/go-airpaint/pkg/palette"
)

func main() {
	host := flag.String("host", "localhost:"+config.DashboardPort(config.DefaultDashboardPort), "Dashboard host:port")
	key := flag.String("key", "", "Send one key (clear, toggle, quit, 1-9) and exit")
	logLevel := flag.String("log-level", config.LogLevel(config.DefaultLogLevel), "Log level")
	flag.Parse()

	log.Init(*logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	if *key != "" {
		err = sendKey(ctx, *host, *key)
	} else {
		err = watch(ctx, *host)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func sendKey(ctx context.Context, host, key string) error {
	if _, ok := paint.ParseKeyName(key); !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	u := url.URL{Scheme: "http", Host: host, Path: "/api/keys/" + key}
	if err := httpc.Post(ctx, u.String(), nil); err != nil {
		return err
	}
	fmt.Printf("✅ Sent %s\n", key)
	return nil
}

func watch(ctx context.Context, host string) error {
	var presets []palette.Preset
	api := url.URL{Scheme: "http", Host: host, Path: "/api/palette"}
	if err := httpc.GetJSON(ctx, api.String(), &presets); err != nil {
		return fmt.Errorf("dashboard not reachable: %w", err)
	}

	ws := url.URL{Scheme: "ws", Host: host, Path: "/ws/status"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ws.String(), nil)
	if err != nil {
		return fmt.Errorf("status stream: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}()

	fmt.Printf("👀 Watching %s\n", host)

	var last paint.Status
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("status stream closed: %w", err)
		}

		var status paint.Status
		if err := json.Unmarshal(data, &status); err != nil {
			log.Warn("bad status message", "error", err)
			continue
		}
		if changed(last, status) {
			fmt.Println(describe(status, presets))
		}
		last = status
	}
}

// changed reports whether anything worth printing moved. Frame counters
// alone do not count.
func changed(prev, cur paint.Status) bool {
	return prev.SessionID != cur.SessionID ||
		prev.Drawing != cur.Drawing ||
		prev.Color != cur.Color ||
		prev.Samples != cur.Samples ||
		prev.Lifts != cur.Lifts
}

func describe(s paint.Status, presets []palette.Preset) string {
	pen := fmt.Sprintf("rgb(%d,%d,%d)", s.Color.R, s.Color.G, s.Color.B)
	for _, p := range presets {
		if p.Color == s.Color {
			pen = p.Name
			break
		}
	}

	state := "✏️  drawing"
	if !s.Drawing {
		state = "⏸️  paused"
	}
	marker := "no marker"
	if s.Detection.Found {
		marker = fmt.Sprintf("marker at %v", s.Detection.Point)
	}
	return fmt.Sprintf("%s | pen %s | %d samples, %d strokes | %s | frame %d",
		state, pen, s.Samples, s.Segments, marker, s.Frames)
}
