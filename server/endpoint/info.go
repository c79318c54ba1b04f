package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/asrdrop/transcription"
	"github.com/kbukum/asrdrop/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info reports build information, the active provider and the languages it
// accepts.
func Info(serviceName, providerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.GetVersionInfo()
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"provider":   providerName,
			"languages":  transcription.Languages,
			"modes":      []transcription.Mode{transcription.ModeSingle, transcription.ModeBatch},
			"uptime":     time.Since(startTime).Round(time.Second).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
