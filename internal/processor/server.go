package processor

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

// MaxSuggestions caps the /api/v1/suggestions result
const MaxSuggestions = 5

// StaticConfig locates the web assets served next to the API. Relative
// directories are resolved against Dir; missing ones are not mounted.
type StaticConfig struct {
	Dir       string
	PhotosDir string
	IndexFile string
}

// Server exposes a Router over HTTP
type Server struct {
	router  *Router
	tables  *tables.Tables
	health  *observability.HealthChecker
	metrics *observability.MetricsCollector
	static  StaticConfig
	logger  *observability.Logger
}

// NewServer creates the HTTP layer. health may be nil.
func NewServer(router *Router, t *tables.Tables, health *observability.HealthChecker, static StaticConfig, logger *observability.Logger) *Server {
	if logger == nil {
		logger = observability.NewLogger("http")
	}
	return &Server{
		router:  router,
		tables:  t,
		health:  health,
		metrics: observability.GetGlobalMetrics(),
		static:  static,
		logger:  logger,
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *gin.Engine {
	r := gin.New()
	r.Use(observability.RecoveryMiddleware(s.logger))
	r.Use(observability.RequestLoggingMiddleware(s.logger))
	r.Use(observability.CORS(s.logger))

	r.GET("/ask", s.handleAsk)

	api := r.Group("/api/v1")
	{
		api.GET("/ask", s.handleAsk)
		api.GET("/departments", s.handleGetDepartments)
		api.GET("/suggestions", s.handleGetSuggestions)
	}

	if s.health != nil {
		r.GET("/health", observability.HealthHandler(s.health))
	}
	r.GET("/metrics", observability.MetricsHandler(s.metrics))

	s.mountStatic(r)

	return r
}

func (s *Server) mountStatic(r *gin.Engine) {
	for _, dir := range []string{"mp4", "image", "about_us"} {
		if path, ok := s.existing(dir, true); ok {
			r.Static("/"+dir, path)
		}
	}

	if path, ok := s.existing(s.static.PhotosDir, true); ok {
		r.Static("/photos", path)
	} else {
		s.logger.Warn(context.Background(), "Photo folder not found, staff photos will not be served", map[string]interface{}{
			"photos_dir": s.static.PhotosDir,
		})
	}

	if path, ok := s.existing(s.static.IndexFile, false); ok {
		r.StaticFile("/", path)
	}
}

// existing resolves name against the static root and reports whether it
// exists as a directory (or as a file when wantDir is false)
func (s *Server) existing(name string, wantDir bool) (string, bool) {
	if name == "" {
		return "", false
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.static.Dir, name)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() != wantDir {
		return "", false
	}
	return path, true
}

func (s *Server) handleAsk(c *gin.Context) {
	question, ok := c.GetQuery("question")
	if !ok || strings.TrimSpace(question) == "" {
		c.JSON(http.StatusOK, s.router.MissingQuestion())
		return
	}

	c.JSON(http.StatusOK, s.router.Ask(c.Request.Context(), question))
}

func (s *Server) handleGetDepartments(c *gin.Context) {
	depts := s.tables.Departments()

	// Initialize as empty array instead of nil to ensure JSON returns [] instead of null
	names := make([]string, 0, len(depts))
	for _, d := range depts {
		names = append(names, d.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": names,
		"count":       len(names),
	})
}

func (s *Server) handleGetSuggestions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"suggestions": s.suggest(query),
	})
}

// suggest ranks department and staff names that contain the query's
// characters in order, closest first
func (s *Server) suggest(query string) []string {
	suggestions := make([]string, 0, MaxSuggestions)
	if query == "" {
		return suggestions
	}

	ranks := fuzzysearch.RankFindNormalizedFold(query, s.candidates())
	sort.Stable(ranks)

	for _, rank := range ranks {
		if len(suggestions) == MaxSuggestions {
			break
		}
		suggestions = append(suggestions, rank.Target)
	}
	return suggestions
}

func (s *Server) candidates() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, d := range s.tables.Departments() {
		add(d.Name)
	}
	for _, room := range s.tables.Rooms() {
		add(room.Person)
	}
	return names
}
