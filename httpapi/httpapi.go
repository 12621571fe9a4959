// Package httpapi exposes the search engine over HTTP using
// github.com/gin-gonic/gin, grounded on the source system's host module
// (rocket routes) translated to gin's routing idiom.
package httpapi

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mooss/heurisko/config"
	"github.com/mooss/heurisko/herrors"
	"github.com/mooss/heurisko/ingest"
	"github.com/mooss/heurisko/searcher"
)

// New builds a gin.Engine with every route bound to idx and cfg. Both
// are immutable after construction, so handlers need no locking.
func New(idx *searcher.Index, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, config.AppDisplayName)
	})

	r.GET("/ids", func(c *gin.Context) {
		c.JSON(http.StatusOK, idx.TranscriptIDs())
	})

	r.GET("/search", func(c *gin.Context) {
		query := c.Query("query")
		context := queryInt(c, "context", cfg.ContextSize.Value)
		page := queryInt(c, "page", 0)
		removeStopWords := queryBool(c, "remove_stop_words", cfg.RemoveStopWords.Value)

		if err := checkTermCeiling(query, removeStopWords, idx); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		results := idx.Search(query, context, page, removeStopWords,
			cfg.WordDistance, cfg.WordDistanceWithStopWordsRemoved, cfg.PageSize.Value)
		c.JSON(http.StatusOK, results)
	})

	r.GET("/search_exact", func(c *gin.Context) {
		query := c.Query("query")
		page := queryInt(c, "page", 0)
		c.JSON(http.StatusOK, idx.SearchExact(query, page, cfg.PageSize.Value))
	})

	r.GET("/diagnostics", func(c *gin.Context) {
		c.JSON(http.StatusOK, idx.Diagnose(c.Query("query")))
	})

	r.GET("/transcript", func(c *gin.Context) {
		words, ok := idx.Words(c.Query("path"))
		if !ok {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, words)
	})

	r.POST("/convert", func(c *gin.Context) {
		var req struct {
			Source      string `json:"source"`
			Destination string `json:"destination"`
			Flatten     bool   `json:"flatten"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		destRoot := filepath.Join(cfg.DataDir, req.Destination)
		if err := ingest.ConvertPath(req.Source, destRoot, req.Flatten, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, req)
	})

	return r
}

// cors applies the four static headers the source system's deployments
// rely on; a dedicated CORS package would add a dependency for a policy
// this small (see DESIGN.md).
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PATCH")
		c.Header("Access-Control-Allow-Headers", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryBool(c *gin.Context, name string, fallback bool) bool {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

// checkTermCeiling rejects queries naming more than wordid.MaxTerms
// distinct non-stop terms before they ever reach the merge step.
func checkTermCeiling(query string, removeStopWords bool, idx *searcher.Index) error {
	if idx.DistinctTermCount(query, removeStopWords) > 32 {
		return &herrors.QueryError{Reason: "query names too many distinct terms"}
	}
	return nil
}
