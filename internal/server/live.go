package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/repcoin/repcoin/internal/engine"
	"github.com/repcoin/repcoin/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app's own origin; tsnet or the API
	// key gate access before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is one inbound message on a live tracking session.
type liveRequest struct {
	Type string `json:"type"` // start | accel | pose | manual | exercise | stop

	// start / exercise
	Exercise string `json:"exercise,omitempty"`
	Source   string `json:"source,omitempty"`

	// accel
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	Z float64 `json:"z,omitempty"`

	// pose
	ShoulderX float64 `json:"shoulder_x,omitempty"`
	ShoulderY float64 `json:"shoulder_y,omitempty"`

	// Sample timestamp in unix milliseconds. Zero means server time.
	TS int64 `json:"ts,omitempty"`
}

// liveResponse is one outbound message on a live tracking session.
type liveResponse struct {
	Type     string           `json:"type"` // started | rep | stopped | error
	Exercise string           `json:"exercise,omitempty"`
	Source   string           `json:"source,omitempty"`
	Coins    int              `json:"coins,omitempty"`
	Count    int              `json:"count,omitempty"`
	TS       int64            `json:"ts,omitempty"`
	Counters *engine.Counters `json:"counters,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// handleLive runs one rep-detection engine per WebSocket connection. The
// client declares the exercise and signal source, then streams raw samples;
// the server pushes back accepted rep events and persists them. Reading
// from a single goroutine keeps samples in arrival order, which the engine
// requires.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("live upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := &liveSession{srv: s, conn: conn, req: r}
	sess.run()
}

// liveSession holds per-connection tracking state.
type liveSession struct {
	srv  *Server
	conn *websocket.Conn
	req  *http.Request

	eng     *engine.Engine
	adapter *engine.Adapter
	count   int
}

func (ls *liveSession) run() {
	for {
		var msg liveRequest
		if err := ls.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ls.srv.log.Info("live session closed", "error", err)
			}
			return
		}
		if err := ls.handle(msg); err != nil {
			ls.send(liveResponse{Type: "error", Error: err.Error()})
		}
	}
}

func (ls *liveSession) handle(msg liveRequest) error {
	switch msg.Type {
	case "start":
		return ls.start(msg)
	case "exercise":
		return ls.switchExercise(msg.Exercise)
	case "accel":
		return ls.offer(engine.AccelReading{X: msg.X, Y: msg.Y, Z: msg.Z, Time: msgTime(msg.TS)})
	case "pose":
		return ls.offer(engine.PoseFrame{Shoulder: engine.Landmark{X: msg.ShoulderX, Y: msg.ShoulderY}, Time: msgTime(msg.TS)})
	case "manual":
		return ls.manual(msgTime(msg.TS))
	case "stop":
		return ls.stop()
	}
	return errors.New("unknown message type")
}

func (ls *liveSession) start(msg liveRequest) error {
	kind, err := engine.ParseKind(msg.Exercise)
	if err != nil {
		return err
	}
	source := engine.SourceManual
	if msg.Source != "" {
		if source, err = engine.ParseSourceKind(msg.Source); err != nil {
			return err
		}
	}

	// Samples arrive over the wire, so every backend the client declares
	// is reachable from here.
	adapter, err := engine.NewAdapter(kind, source, engine.Capabilities{Accelerometer: true, Pose: true})
	if err != nil {
		return err
	}

	eng, err := engine.New(ls.srv.engineCfg.For(kind, source), engine.SinkFunc(ls.onRep))
	if err != nil {
		return err
	}

	ls.eng = eng
	ls.adapter = adapter
	ls.count = 0
	ls.eng.Start()
	ls.send(liveResponse{Type: "started", Exercise: kind.String(), Source: source.String()})
	return nil
}

func (ls *liveSession) switchExercise(name string) error {
	if ls.eng == nil {
		return engine.ErrNotTracking
	}
	kind, err := engine.ParseKind(name)
	if err != nil {
		return err
	}
	if err := ls.eng.SetKind(kind); err != nil {
		return err
	}
	ls.send(liveResponse{Type: "started", Exercise: kind.String(), Source: ls.adapter.Source().String()})
	return nil
}

func (ls *liveSession) offer(raw engine.Raw) error {
	if ls.eng == nil {
		return engine.ErrNotTracking
	}
	sample, err := ls.adapter.Convert(raw)
	if err != nil {
		return err
	}
	err = ls.eng.Offer(sample)
	if errors.Is(err, engine.ErrInvalidSample) {
		// Dropped and counted; the stream continues.
		return nil
	}
	return err
}

func (ls *liveSession) manual(at time.Time) error {
	if ls.eng == nil {
		return engine.ErrNotTracking
	}
	ls.eng.ManualRep(at)
	return nil
}

func (ls *liveSession) stop() error {
	if ls.eng == nil {
		return engine.ErrNotTracking
	}
	counters := ls.eng.Counters()
	ls.eng.Stop()
	ls.send(liveResponse{Type: "stopped", Counters: &counters})
	return nil
}

// onRep is the engine's event sink: persist the rep and push it to the
// client. Persistence failures are logged, not surfaced; the client still
// sees the rep and the offline journal path covers durability.
func (ls *liveSession) onRep(kind engine.Kind, at time.Time) {
	ls.count++
	rep := models.NewRep(kind, ls.adapter.Source(), at)
	if _, err := ls.srv.db.InsertRep(ls.req.Context(), rep); err != nil {
		ls.srv.log.Error("persist live rep", "error", err)
	}
	ls.send(liveResponse{
		Type:     "rep",
		Exercise: kind.String(),
		Coins:    rep.CoinsEarned,
		Count:    ls.count,
		TS:       at.UnixMilli(),
	})
}

func (ls *liveSession) send(resp liveResponse) {
	if err := ls.conn.WriteJSON(resp); err != nil {
		ls.srv.log.Info("live write failed", "error", err)
	}
}

func msgTime(ms int64) time.Time {
	if ms == 0 {
		return time.Now()
	}
	return time.UnixMilli(ms)
}
