package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// User-facing error messages.
const (
	msgNoQuestion      = "No question provided"
	msgNoMaterial      = "No reference material available yet. Please contact the administrator."
	msgLLMUnavailable  = "LLM not configured"
	msgNoFile          = "No file provided"
	msgNoFileSelected  = "No file selected"
	msgInvalidFileType = "Invalid file type"
	msgFileTooLarge    = "File too large"
	msgFileNotFound    = "File not found"
	msgIngestRunning   = "Ingestion already in progress"
)

// askRequest is the /ask request body.
type askRequest struct {
	Question string                    `json:"question"`
	History  []domain.ConversationTurn `json:"history"`
}

// searchResponse is the /search response body.
type searchResponse struct {
	Query string             `json:"query"`
	Hits  []domain.SearchHit `json:"hits"`
	Count int                `json:"count"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "refdesk",
		"version": s.cfg.Version,
	})
}

// handleAsk streams the answer as Server-Sent Events. Failures detected
// before streaming starts are plain JSON errors.
func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoQuestion})
		return
	}

	events, err := s.ports.Ask.Ask(c.Request.Context(), domain.Question{Text: req.Question, History: req.History})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoReferenceMaterial):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoMaterial})
		case errors.Is(err, domain.ErrLLMUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgLLMUnavailable})
		default:
			respondError(c, err)
		}
		return
	}

	streamEvents(c, events)
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")

	var opts domain.SearchOptions
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		opts.Limit = limit
	}

	hits, err := s.ports.Search.Search(c.Request.Context(), query, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchResponse{Query: query, Hits: hits, Count: len(hits)})
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFileSelected})
		return
	}
	if fh.Size > domain.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgFileTooLarge})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	stored, err := s.ports.Library.Upload(c.Request.Context(), fh.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidFileType})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "filename": stored})
}

func (s *Server) handleListFiles(c *gin.Context) {
	files, err := s.ports.Library.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (s *Server) handleDeleteFile(c *gin.Context) {
	if err := s.ports.Library.Delete(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgFileNotFound})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListSources(c *gin.Context) {
	sources, err := s.ports.Source.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (s *Server) handleAddSource(c *gin.Context) {
	var src domain.Source
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := s.ports.Source.Add(c.Request.Context(), src); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "source": src})
}

func (s *Server) handleRemoveSource(c *gin.Context) {
	if err := s.ports.Source.Remove(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleIngest(c *gin.Context) {
	report, err := s.ports.Ingest.Ingest(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIngestInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": msgIngestRunning})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"documents": s.ports.Ingest.Documents(c.Request.Context())})
}

// respondError maps domain errors to status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrIngestInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
