package dashboard

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/hubscout/internal/export"
	"github.com/zulandar/hubscout/internal/store"
)

// Export cache keys.
const (
	cacheCSV  = "export.csv"
	cacheJSON = "export.json"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func (s *server) registerRoutes(router *gin.Engine) {
	// Embedded static assets under a versioned prefix so they can be cached
	// forever.
	staticFS, _ := fs.Sub(assetsFS, "assets")
	static := router.Group("/static/"+AssetVersion, func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Next()
	})
	static.StaticFS("/", http.FS(staticFS))

	// Pages.
	router.GET("/", s.handleIndex)

	// API.
	api := router.Group("/api")
	api.GET("/records", s.handleListRecords)
	api.GET("/records/:createdAt", s.handleGetRecord)
	api.DELETE("/records/:createdAt", s.handleDeleteRecord)
	api.DELETE("/records", s.handleClearRecords)
	api.GET("/events", s.handleSSE)

	// Exports.
	router.GET("/export.csv", s.handleExportCSV)
	router.GET("/export.json", s.handleExportJSON)
}

func (s *server) handleIndex(c *gin.Context) {
	records, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.HTML(http.StatusOK, "layout.html", gin.H{
		"AssetVersion": AssetVersion,
		"StoreKey":     s.store.Key(),
		"Count":        len(records),
		"Records":      RecordRows(records, s.now()),
	})
}

func (s *server) handleListRecords(c *gin.Context) {
	records, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := export.JSON(records)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *server) handleGetRecord(c *gin.Context) {
	r, err := s.store.Get(c.Request.Context(), c.Param("createdAt"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *server) handleDeleteRecord(c *gin.Context) {
	key := c.Param("createdAt")
	n, err := s.store.Delete(c.Request.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.exports.Flush()
	s.log.Info("record deleted", "key", key, "removed", n)
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *server) handleClearRecords(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	s.exports.Flush()
	s.log.Warn("all records cleared", "store_key", s.store.Key())
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (s *server) handleExportCSV(c *gin.Context) {
	s.serveExport(c, cacheCSV, "text/csv; charset=utf-8", func() ([]byte, error) {
		records, err := s.store.Load(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return export.CSV(records), nil
	})
}

func (s *server) handleExportJSON(c *gin.Context) {
	s.serveExport(c, cacheJSON, "application/json; charset=utf-8", func() ([]byte, error) {
		records, err := s.store.Load(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return export.JSON(records)
	})
}

// serveExport writes a cached export as a file download, rendering it on a
// cache miss.
func (s *server) serveExport(c *gin.Context, cacheKey, contentType string, render func() ([]byte, error)) {
	var data []byte
	if v, ok := s.exports.Get(cacheKey); ok {
		data = v.([]byte)
	} else {
		var err error
		if data, err = render(); err != nil {
			s.fail(c, err)
			return
		}
		s.exports.SetDefault(cacheKey, data)
	}

	jsonName, csvName := export.FileNames(s.now())
	name := csvName
	if cacheKey == cacheJSON {
		name = jsonName
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}

func (s *server) fail(c *gin.Context, err error) {
	s.log.Error("dashboard request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
