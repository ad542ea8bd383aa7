package web

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"punktual/internal/capture"
	"punktual/internal/ics"
	appLog "punktual/internal/log"
	"punktual/internal/model"
	"punktual/internal/platform"
	"punktual/internal/recurrence"
)

type linksRequest struct {
	Event model.EventDescription `json:"event"`
}

type linksResponse struct {
	Links model.LinkMap `json:"links"`
}

type generateRequest struct {
	Event   model.EventDescription `json:"event"`
	Style   model.ButtonStyle      `json:"style"`
	Options model.CodeOptions      `json:"options"`

	// Shorten routes the links through the short-link service before
	// rendering. Failures fall back to the raw links.
	Shorten     bool   `json:"shorten"`
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

type generateResponse struct {
	Code      string `json:"code"`
	Format    string `json:"format"`
	Shortened bool   `json:"shortened"`
}

type occurrencesRequest struct {
	Event model.EventDescription `json:"event"`
	Limit int                    `json:"limit"`
}

type occurrencesResponse struct {
	Occurrences []string `json:"occurrences"`
}

type importRequest struct {
	URL string `json:"url"`
}

type importResponse struct {
	Event model.EventDescription `json:"event"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) handlePlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": platform.All()})
}

func (s *Server) handleLinks(c *gin.Context) {
	var req linksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, linksResponse{Links: s.gen.BuildLinks(req.Event)})
}

// handleGenerate renders embed code. options.format "direct" produces the
// plain link list.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	format := req.Options.Format
	if format == "" {
		format = model.FormatHTML
	}
	req.Options.Format = format

	lm := s.gen.BuildLinks(req.Event)

	shortened := false
	if req.Shorten && !lm.Empty() && s.shortener != nil && s.shortener.Configured() {
		short, err := s.shortener.CreateShortLinks(c.Request.Context(), lm, req.Event.Title, req.UserID, req.AccessToken)
		if err != nil {
			appLog.Warn("short link creation failed; using raw links", "err", err)
		} else {
			lm = short
			shortened = true
		}
	}

	c.JSON(http.StatusOK, generateResponse{
		Code:      s.gen.Render(lm, req.Style, req.Options),
		Format:    format,
		Shortened: shortened,
	})
}

func (s *Server) handleOccurrences(c *gin.Context) {
	var req occurrencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if !req.Event.Complete() {
		writeError(c, http.StatusBadRequest, "event title and startDate are required")
		return
	}

	times := recurrence.Upcoming(req.Event, req.Limit)
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.Format(time.RFC3339))
	}
	c.JSON(http.StatusOK, occurrencesResponse{Occurrences: out})
}

// handleImport accepts either a raw ICS body or {"url": "..."} JSON.
func (s *Server) handleImport(c *gin.Context) {
	var body []byte
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
			writeError(c, http.StatusBadRequest, "url field is required")
			return
		}
		fetched, err := s.fetcher.Fetch(c.Request.Context(), req.URL)
		if err != nil {
			appLog.Warn("ics import fetch failed", "err", err)
			status := http.StatusBadGateway
			if errors.Is(err, ics.ErrBlockedHost) {
				status = http.StatusBadRequest
			}
			writeError(c, status, err.Error())
			return
		}
		body = fetched
	} else {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, s.cfg.Import.MaxBytes+1))
		if err != nil {
			writeError(c, http.StatusBadRequest, "failed to read body")
			return
		}
		if int64(len(raw)) > s.cfg.Import.MaxBytes {
			writeError(c, http.StatusRequestEntityTooLarge, ics.ErrTooLarge.Error())
			return
		}
		body = raw
	}

	ev, err := ics.ParseEvent(body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ics.ErrNoEvent) {
			status = http.StatusUnprocessableEntity
		}
		writeError(c, status, err.Error())
		return
	}
	c.JSON(http.StatusOK, importResponse{Event: ev})
}

// handlePreview renders the requested embed code and returns a PNG.
func (s *Server) handlePreview(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	switch req.Options.Format {
	case "", model.FormatHTML, model.FormatDirect:
	default:
		writeError(c, http.StatusBadRequest, "preview supports html and direct formats only")
		return
	}
	if req.Options.Format == "" {
		req.Options.Format = model.FormatHTML
	}
	req.Options.IncludeCSS = true
	req.Options.IncludeJS = true

	markup := s.gen.Generate(req.Event, req.Style, req.Options)
	png, err := s.preview(c.Request.Context(), markup, capture.Options{
		Width:   s.cfg.Capture.Width,
		Height:  s.cfg.Capture.Height,
		Timeout: s.cfg.CaptureTimeout(),
	})
	if err != nil {
		appLog.Error("preview capture failed", err)
		writeError(c, http.StatusInternalServerError, "preview capture failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
