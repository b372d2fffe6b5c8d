package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-minirt/pkg/output"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/google/uuid"
)

// RenderRequest represents the parsed query of a render request
type RenderRequest struct {
	Width  int
	Height int
	Format output.Format
	Thumb  int // Max thumbnail edge in pixels, 0 for full size
	Upload bool
}

// handleRender renders a scene and writes the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	renderID := uuid.NewString()
	w.Header().Set("X-Render-ID", renderID)
	logger := NewRenderLogger(renderID, s.logger)
	s.logs.add(logger)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		logger.Printf("Invalid request: %v\n", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := s.sceneFromRequest(w, r)
	if err != nil {
		logger.Printf("Scene error: %v\n", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	rt := renderer.NewRaytracer(sc, renderer.Config{
		Width:   req.Width,
		Height:  req.Height,
		Workers: s.cfg.Workers,
	}, logger)

	fb, stats, err := rt.Render(ctx)
	if err != nil {
		logger.Printf("Render error: %v\n", err)
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "render timed out")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if req.Thumb > 0 {
		err = output.EncodeImage(&buf, output.Thumbnail(fb, req.Thumb), req.Format)
	} else {
		err = output.Encode(&buf, fb, req.Format)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Upload {
		key := "renders/" + renderID + req.Format.Extension()
		if err := s.uploader.Upload(ctx, key, req.Format.ContentType(), buf.Bytes()); err != nil {
			logger.Printf("Upload failed: %v\n", err)
			writeError(w, http.StatusInternalServerError, "upload failed")
			return
		}
		logger.Printf("Uploaded %s (%d bytes)\n", key, buf.Len())
		w.Header().Set("X-Upload-Key", key)
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Coverage", strconv.FormatFloat(stats.Coverage(), 'f', 4, 64))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{}

	var err error
	if req.Width, err = parseIntParam(query, "width", s.cfg.Width, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", s.cfg.Height, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(query, "thumb", 0, 0, maxDimension); err != nil {
		return nil, err
	}

	formatName := query.Get("format")
	if formatName == "" {
		formatName = s.cfg.Format
	}
	if req.Format, err = output.ParseFormat(formatName); err != nil {
		return nil, err
	}

	switch query.Get("upload") {
	case "", "0", "false":
	case "1", "true":
		if s.uploader == nil {
			return nil, errors.New("uploads are not configured")
		}
		req.Upload = true
	default:
		return nil, fmt.Errorf("invalid upload: %s", query.Get("upload"))
	}

	// Performance warning
	if req.Width*req.Height > 1920*1080 {
		s.logger.Printf("Render warning: %dx%d may exceed the %v timeout\n", req.Width, req.Height, s.renderTimeout)
	}

	return req, nil
}

// SetRenderTimeout changes the per-request render deadline
func (s *Server) SetRenderTimeout(d time.Duration) {
	s.renderTimeout = d
}
