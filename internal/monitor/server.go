// Package monitor exposes the engine's state over a small HTTP API: concert
// document get/put, runtime settings, log tail and MIDI port discovery.
package monitor

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"midiglow/internal/debug"
	"midiglow/internal/midi"
	"midiglow/internal/model"
	"midiglow/internal/processing"
	"midiglow/internal/storage"
)

// Server serves the monitor API for a running engine.
type Server struct {
	concert  *processing.Concert
	settings *model.SystemSettingsModel
	store    *storage.ConcertStore
	logger   *debug.Logger

	// ListMidiPorts is swappable for tests and driverless builds
	ListMidiPorts func() []string
}

// NewServer creates a monitor for the given engine. store may be nil; the
// concert is then not persisted on replacement.
func NewServer(concert *processing.Concert, settings *model.SystemSettingsModel, store *storage.ConcertStore, logger *debug.Logger) *Server {
	return &Server{
		concert:       concert,
		settings:      settings,
		store:         store,
		logger:        logger,
		ListMidiPorts: midi.ListPorts,
	}
}

// Router builds the gin engine serving the API.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/status", s.getStatus)
		api.GET("/concert", s.getConcert)
		api.PUT("/concert", s.putConcert)
		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.putSettings)
		api.GET("/log", s.getLog)
		api.GET("/midi/ports", s.getMidiPorts)
	}

	return r
}

// Run serves the API on the configured address, blocking.
func (s *Server) Run() error {
	return s.Router().Run(s.settings.GetMonitorAddress())
}

func (s *Server) getStatus(c *gin.Context) {
	status := gin.H{
		"patchCount":          s.concert.Size(),
		"activePatchPosition": int(s.concert.GetActivePatchPosition()),
		"currentBank":         s.concert.GetCurrentBank(),
		"stripSize":           s.concert.StripSize(),
	}
	if position := s.concert.GetActivePatchPosition(); position != processing.InvalidPatchPosition {
		if patch := s.concert.GetPatch(position); patch != nil {
			status["activePatchName"] = patch.GetName()
		}
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) getConcert(c *gin.Context) {
	c.JSON(http.StatusOK, s.concert.ToJSON())
}

func (s *Server) putConcert(c *gin.Context) {
	var converted map[string]interface{}
	if err := c.ShouldBindJSON(&converted); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.concert.FromJSON(converted)
	if s.logger != nil {
		s.logger.LogMonitorf(debug.LogLevelInfo, "concert replaced via monitor API")
	}

	if s.store != nil {
		if err := s.store.Save(s.concert); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, s.concert.ToJSON())
}

type settingsDocument struct {
	MidiPortName    *string `json:"midiPortName"`
	FrameRate       *int    `json:"frameRate"`
	ConcertFilePath *string `json:"concertFilePath"`
	MonitorAddress  *string `json:"monitorAddress"`
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"midiPortName":    s.settings.GetMidiPortName(),
		"frameRate":       s.settings.GetFrameRate(),
		"concertFilePath": s.settings.GetConcertFilePath(),
		"monitorAddress":  s.settings.GetMonitorAddress(),
	})
}

func (s *Server) putSettings(c *gin.Context) {
	var doc settingsDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if doc.MidiPortName != nil {
		s.settings.SetMidiPortName(*doc.MidiPortName)
	}
	if doc.FrameRate != nil {
		s.settings.SetFrameRate(*doc.FrameRate)
	}
	if doc.ConcertFilePath != nil {
		s.settings.SetConcertFilePath(*doc.ConcertFilePath)
	}
	if doc.MonitorAddress != nil {
		s.settings.SetMonitorAddress(*doc.MonitorAddress)
	}

	s.getSettings(c)
}

func (s *Server) getLog(c *gin.Context) {
	count := 100
	if raw := c.Query("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			count = parsed
		}
	}

	entries := []string{}
	if s.logger != nil {
		for _, entry := range s.logger.GetRecentEntries(count) {
			entries = append(entries, entry.Format())
		}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) getMidiPorts(c *gin.Context) {
	ports := s.ListMidiPorts()
	if ports == nil {
		ports = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ports": ports})
}
