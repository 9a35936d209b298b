// Package server exposes the HTTP API: video-info resolution and
// download redirects to the external mirror, plus the embedded web UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/format"
	"github.com/tubegrab/tubegrab/internal/mirror"
	"github.com/tubegrab/tubegrab/internal/resolver"
	"github.com/tubegrab/tubegrab/internal/version"
	"github.com/tubegrab/tubegrab/internal/videoid"
)

// MetadataResolver resolves an extracted video ID into metadata.
type MetadataResolver interface {
	ResolveID(ctx context.Context, id string) (*resolver.Metadata, error)
}

// infoResponse is the external JSON contract of GET /api/info.
// lengthSeconds and viewCount are decimal strings, matching what existing
// clients parse.
type infoResponse struct {
	VideoID       string          `json:"videoId"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	LengthSeconds string          `json:"lengthSeconds"`
	ViewCount     string          `json:"viewCount"`
	ThumbnailURL  string          `json:"thumbnailUrl"`
	Formats       []format.Format `json:"formats"`
	Source        string          `json:"source"`
}

// Server is the tubegrab HTTP server.
type Server struct {
	port     int
	resolver MetadataResolver
	mirror   *mirror.Resolver
	server   *http.Server
	engine   *gin.Engine
}

// NewServer wires the server from config and an already-constructed
// resolver (optionally wrapped in a cache).
func NewServer(cfg *config.Config, res MetadataResolver) *Server {
	return &Server{
		port:     cfg.Server.Port,
		resolver: res,
		mirror:   mirror.New(cfg.Mirror.BaseURL),
	}
}

// setupEngine builds the gin engine with middleware and routes.
func (s *Server) setupEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(corsHeaders())

	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/info", s.handleInfo)
	api.GET("/download", s.handleDownload)
	api.GET("/download/link", s.handleDownloadLink)

	s.engine = engine
	if webFS := GetWebFS(); webFS != nil {
		s.setupStaticFiles(webFS)
	}
	return engine
}

// Start runs the HTTP server. It blocks until the listener fails or the
// server is stopped.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.setupEngine()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting tubegrab server on port %d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Middleware

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := uuid.NewString()[:8]
		c.Set("request_id", rid)
		c.Next()
		log.Printf("[%s] %s %s %d %s", rid, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}

// corsHeaders mirrors the permissive CORS policy of the original service
// so the UI can be hosted separately from the API.
func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// setupStaticFiles serves the embedded UI with fallback to index.html
func (s *Server) setupStaticFiles(webFS fs.FS) {
	s.engine.GET("/app.js", func(c *gin.Context) {
		c.FileFromFS("app.js", http.FS(webFS))
	})

	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		indexFile, err := fs.ReadFile(webFS, "index.html")
		if err != nil {
			c.String(http.StatusNotFound, "index.html not found")
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, string(indexFile))
	})
}

// Handlers

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	id, ok := videoid.Extract(rawURL)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract video ID from URL"})
		return
	}

	meta, err := s.resolver.ResolveID(c.Request.Context(), id)
	if err != nil {
		var upstream *resolver.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "All methods failed to fetch video information",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, infoResponse{
		VideoID:       meta.VideoID,
		Title:         meta.Title,
		Author:        meta.Author,
		LengthSeconds: strconv.FormatInt(meta.LengthSeconds, 10),
		ViewCount:     strconv.FormatInt(meta.ViewCount, 10),
		ThumbnailURL:  meta.ThumbnailURL,
		Formats:       meta.Formats,
		Source:        string(meta.Source),
	})
}

// downloadTarget resolves the request parameters shared by the two
// download routes. Exactly one of videoId/url is required; videoId wins
// when both are present.
func (s *Server) downloadTarget(c *gin.Context) (id, target, fileFormat string, ok bool) {
	id = strings.TrimSpace(c.Query("videoId"))
	if id == "" {
		rawURL := strings.TrimSpace(c.Query("url"))
		if rawURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "videoId or url parameter is required"})
			return "", "", "", false
		}
		var found bool
		id, found = videoid.Extract(rawURL)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract video ID from URL"})
			return "", "", "", false
		}
	}

	fileFormat = c.DefaultQuery("format", "mp4")
	itag := c.Query("itag")
	return id, s.mirror.DownloadTarget(id, itag, fileFormat), fileFormat, true
}

func (s *Server) handleDownload(c *gin.Context) {
	_, target, _, ok := s.downloadTarget(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, target)
}

// handleDownloadLink returns the mirror URL as JSON instead of redirecting,
// for clients that cannot follow 3xx responses.
func (s *Server) handleDownloadLink(c *gin.Context) {
	id, target, fileFormat, ok := s.downloadTarget(c)
	if !ok {
		return
	}

	ext := "mp4"
	if fileFormat == "mp3" {
		ext = "mp3"
	}
	filename := fmt.Sprintf("youtube_%s_%s.%s", id, time.Now().Format("20060102150405"), ext)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"redirectUrl": target,
		"filename":    filename,
		"message":     "Redirecting to download service",
	})
}
