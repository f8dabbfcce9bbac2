package preview

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/rook-computer/easel/render/layout"
)

const maxEventBody = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// inputEvent is the body of POST /api/v1/events.
type inputEvent struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Code   string  `json:"code"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type placementResponse struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type viewportResponse struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Placement placementResponse `json:"placement"`
	Frames    uint64            `json:"frames"`
}

func (s *Server) apiV1Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/viewport", s.handleViewport)
	return mux
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var ev inputEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBody)).Decode(&ev); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sink := s.currentSink()
	if sink == nil && ev.Type != "resize" {
		writeAPIError(w, http.StatusServiceUnavailable, "no_session", "no session is listening")
		return
	}

	switch ev.Type {
	case "pointermove":
		if !finite(ev.X) || !finite(ev.Y) {
			writeAPIError(w, http.StatusBadRequest, "invalid_event", "x and y must be finite")
			return
		}
		sink.PointerMove(ev.X, ev.Y)
	case "keydown", "keyup":
		if ev.Code == "" {
			writeAPIError(w, http.StatusBadRequest, "invalid_event", "code is required")
			return
		}
		if ev.Type == "keydown" {
			sink.KeyDown(ev.Code)
		} else {
			sink.KeyUp(ev.Code)
		}
	case "resize":
		if !(ev.Width > 0) || !(ev.Height > 0) || !finite(ev.Width) || !finite(ev.Height) {
			writeAPIError(w, http.StatusBadRequest, "invalid_event", "width and height must be positive")
			return
		}
		if sink := s.setViewport(ev.Width, ev.Height); sink != nil {
			sink.Resize()
		}
	default:
		writeAPIError(w, http.StatusBadRequest, "unknown_event", "unknown event type "+strconv.Quote(ev.Type))
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	s.mu.Lock()
	resp := viewportResponse{
		Width:     s.viewportWidth,
		Height:    s.viewportHeight,
		Placement: toPlacementResponse(s.placement),
		Frames:    s.frames,
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var buf bytes.Buffer
	s.mu.Lock()
	if s.frame == nil {
		s.mu.Unlock()
		writeAPIError(w, http.StatusNotFound, "no_frame", "nothing presented yet")
		return
	}
	err := png.Encode(&buf, s.frame)
	frames := s.frames
	s.mu.Unlock()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Count", strconv.FormatUint(frames, 10))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(buf.Bytes())
	}
}

func toPlacementResponse(p layout.Placement) placementResponse {
	return placementResponse{Left: p.Left, Top: p.Top, Width: p.Width, Height: p.Height}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
