package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/interact"
	nio "github.com/matzehuels/netcanvas/pkg/io"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/session"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

type createResponse struct {
	ID     string    `json:"id"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	State  viz.State `json:"state"`
}

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := nio.WriteJSON(s.Network(), &buf); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	raster := canvas.NewRaster(s.cfg.Width, s.cfg.Height)
	g := viz.New(s.Network(), raster,
		viz.WithOptions(s.cfg.Options),
		viz.WithLogger(s.logger),
		viz.WithHitTester(interact.NearestPoint{Tolerance: s.cfg.Tolerance}),
	)
	if err := g.Init(); err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := session.New(g, raster)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}

	id := sess.ID
	g.OnHover(func(n network.Node) {
		s.logger.Debug("hover", "session", id, "node", n.Index, "label", n.DisplayLabel())
	})
	s.logger.Info("session created", "id", id, "sessions", s.store.Len())
	writeJSON(w, http.StatusCreated, createResponse{
		ID:     id,
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		State:  g.Snapshot(),
	})
}

func (s *Server) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	sess.Lock()
	err := sess.Raster.EncodePNG(&buf)
	sess.Unlock()
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode png"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	svg := canvas.NewSVG(float64(s.cfg.Width), float64(s.cfg.Height))
	sess.Lock()
	sess.Graph.RenderTo(svg)
	sess.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg.Bytes())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	events, err := interact.ReadScript(http.MaxBytesReader(w, r.Body, maxEventBody))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.Lock()
	err = sess.Graph.HandleAll(events)
	state := sess.Graph.Snapshot()
	sess.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	state := sess.Graph.Snapshot()
	sess.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("session deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {id} URL parameter, writing a 404 when unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	if !session.ValidID(id) {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id))
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.GetCode(err), Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidEvent, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeSessionNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
