package webd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/cyz14/s2cells/render"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/viewer"
	"github.com/ethereum/go-ethereum/event"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/olahol/melody"
	"time"
)

type websocketAction string

const (
	websocketActionFrame  websocketAction = "frame"
	websocketActionStatus websocketAction = "status"
	websocketActionSelect websocketAction = "select"
	websocketActionToggle websocketAction = "toggle"
	websocketActionError  websocketAction = "error"
)

// Keys of the ttl cache replayed to newly connected clients, in this order.
const (
	lastSentStatus = "status"
	lastSentFrame  = "frame"
)

// websocketRequest is a message from a client.
//
//	{"action":"select","level":3}
//	{"action":"toggle","layer":"Polygons","enabled":true}
type websocketRequest struct {
	Action  websocketAction `json:"action"`
	Level   *int            `json:"level,omitempty"`
	Layer   string          `json:"layer,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
}

type broadframe struct {
	Action websocketAction `json:"action"`
	Frame  render.Frame    `json:"frame"`
}

type broadstatus struct {
	Action     websocketAction `json:"action"`
	Level      s2.CellLevel    `json:"level"`
	Generation uint64          `json:"generation"`
	Source     string          `json:"source"`
	NCells     int             `json:"ncells"`
	Failure    string          `json:"failure,omitempty"`
	Elapsed    string          `json:"elapsed"`
}

type broaderror struct {
	Action websocketAction `json:"action"`
	Error  string          `json:"error"`
}

var errBadRequest = errors.New("bad websocket request")

// initMelody sets up the websocket handler and the fan-out of
// redraw frames and load results to connected clients.
func (s *WebDaemon) initMelody() {
	s.melodyInstance = melody.New()
	s.melodyInstance.Config.MessageBufferSize = 64

	s.melodyInstance.HandleConnect(func(session *melody.Session) {
		s.logger.Info("Websocket connected", "remote", session.Request.RemoteAddr)
		for _, key := range []string{lastSentStatus, lastSentFrame} {
			item := s.lastSent.Get(key)
			if item == nil {
				continue
			}
			if err := session.Write(item.Value()); err != nil {
				s.logger.Warn("Failed to replay last message", "key", key, "error", err)
			}
		}
	})

	s.melodyInstance.HandleMessage(s.handleSocketMessage)

	s.melodyInstance.HandleDisconnect(func(session *melody.Session) {
		s.logger.Info("Websocket disconnected", "remote", session.Request.RemoteAddr)
	})

	s.melodyInstance.HandleError(func(session *melody.Session, e error) {
		s.logger.Warn("Websocket error", "remote", session.Request.RemoteAddr, "error", e)
	})

	frames := make(chan render.Frame)
	frameSub := s.globe.SubscribeFrames(frames)
	s.subs = append(s.subs, frameSub)
	var lastDrawn uint64
	go broadcastLoop(s, frames, frameSub, func(f render.Frame) (string, any) {
		// Redraws that change nothing visible are not sent again.
		drawn, err := drawnDigest(f)
		if err == nil && drawn == lastDrawn {
			return "", nil
		}
		lastDrawn = drawn
		return lastSentFrame, broadframe{Action: websocketActionFrame, Frame: f}
	})

	if s.viewer == nil {
		return
	}
	results := make(chan viewer.LoadResult)
	resultSub := s.viewer.SubscribeLoaded(results)
	s.subs = append(s.subs, resultSub)
	go broadcastLoop(s, results, resultSub, func(res viewer.LoadResult) (string, any) {
		if res.Stale {
			return "", nil
		}
		bs := newBroadstatus(res)
		s.recent.Add(bs)
		return lastSentStatus, bs
	})
}

// drawnDigest hashes what a frame shows: each layer's visibility and content digest.
func drawnDigest(f render.Frame) (uint64, error) {
	type drawn struct {
		Name    string
		Enabled bool
		Digest  uint64
	}
	ds := make([]drawn, len(f.Layers))
	for i, l := range f.Layers {
		ds[i] = drawn{Name: l.Name, Enabled: l.Enabled, Digest: l.Digest}
	}
	return hashstructure.Hash(ds, hashstructure.FormatV2, nil)
}

func newBroadstatus(res viewer.LoadResult) broadstatus {
	bs := broadstatus{
		Action:     websocketActionStatus,
		Level:      res.Level,
		Generation: res.Generation,
		Source:     res.Source,
		Elapsed:    res.Elapsed.Round(time.Millisecond).String(),
	}
	if res.Err != nil {
		bs.Failure = viewer.FailureText(res.Level)
	} else if res.Dataset != nil {
		bs.NCells = res.Dataset.NCells
	}
	return bs
}

// broadcastLoop drains a feed subscription, broadcasting each value as JSON
// and remembering it under its key for replay. A nil message is skipped.
// It returns when the subscription ends.
func broadcastLoop[T any](s *WebDaemon, ch <-chan T, sub event.Subscription, encode func(T) (string, any)) {
	for {
		select {
		case v := <-ch:
			key, msg := encode(v)
			if msg == nil {
				continue
			}
			b, err := json.Marshal(msg)
			if err != nil {
				s.logger.Error("Failed to marshal websocket message", "key", key, "error", err)
				continue
			}
			s.lastSent.Set(key, b, 0)
			if s.melodyInstance.IsClosed() {
				continue
			}
			if err := s.melodyInstance.Broadcast(b); err != nil {
				s.logger.Warn("Failed to broadcast", "key", key, "error", err)
			}
		case err := <-sub.Err():
			if err != nil {
				s.logger.Error("Subscription failed", "error", err)
			}
			return
		}
	}
}

func (s *WebDaemon) handleSocketMessage(session *melody.Session, msg []byte) {
	s.logger.Debug("Websocket message", "remote", session.Request.RemoteAddr, "message", string(msg))
	if err := s.applySocketRequest(msg); err != nil {
		s.logger.Warn("Websocket request failed", "error", err)
		b, _ := json.Marshal(broaderror{Action: websocketActionError, Error: err.Error()})
		_ = session.Write(b)
	}
}

func (s *WebDaemon) applySocketRequest(msg []byte) error {
	var req websocketRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if s.viewer == nil {
		return viewer.ErrStopped
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch req.Action {
	case websocketActionSelect:
		if req.Level == nil {
			return fmt.Errorf("%w: select needs a level", errBadRequest)
		}
		return s.viewer.Select(ctx, s2.CellLevel(*req.Level))
	case websocketActionToggle:
		if req.Enabled == nil {
			return fmt.Errorf("%w: toggle needs enabled", errBadRequest)
		}
		return s.viewer.SetLayerEnabled(ctx, req.Layer, *req.Enabled)
	default:
		return fmt.Errorf("%w: unknown action %q", errBadRequest, req.Action)
	}
}
