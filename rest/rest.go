package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"threecard.com/server/game"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()
var tableManager *game.SessionManager
var exitFunc func()

// APP error definition
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type logResponse struct {
	Entries []game.LogEntry `json:"entries"`
	Last    uint64          `json:"last"`
}

// NewRouter returns the operator API for the table. onStop is called after
// the table has been stopped through the API.
func NewRouter(manager *game.SessionManager, onStop func()) *gin.Engine {
	tableManager = manager
	exitFunc = onStop

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ready", ready)
	r.GET("/status", tableStatus)
	r.GET("/log", tableLog)
	r.POST("/reset-winnings", resetWinnings)
	r.POST("/stop", stopTable)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func RunRestServer(port int, manager *game.SessionManager, onStop func()) {
	r := NewRouter(manager, onStop)
	restLogger.Info().Msgf("Starting REST server on port %d", port)
	err := r.Run(fmt.Sprintf(":%d", port))
	if err != nil {
		restLogger.Error().Msgf("REST server returned: %v", err)
	}
}

func ready(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func tableStatus(c *gin.Context) {
	c.JSON(http.StatusOK, tableManager.Match().Snapshot())
}

func tableLog(c *gin.Context) {
	var since uint64
	sinceStr := c.Query("since")
	if sinceStr != "" {
		var err error
		since, err = strconv.ParseUint(sinceStr, 10, 64)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, appError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("Invalid since [%s]", sinceStr),
			})
			return
		}
	}
	entries := tableManager.Match().EventLog().Since(since)
	last := since
	if len(entries) > 0 {
		last = entries[len(entries)-1].Seq
	}
	c.JSON(http.StatusOK, logResponse{Entries: entries, Last: last})
}

func resetWinnings(c *gin.Context) {
	type Payload struct {
		SeatNo int `json:"seatNo"`
	}
	var payload Payload
	err := c.BindJSON(&payload)
	if err != nil {
		restLogger.Error().Msgf("Unable to parse reset request. Error: %v", err)
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	restLogger.Info().Msgf("Received request to reset winnings of seat [%d]", payload.SeatNo)
	err = tableManager.Match().ResetWinnings(payload.SeatNo)
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, appError{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, tableManager.Match().Snapshot())
}

func stopTable(c *gin.Context) {
	restLogger.Info().Msg("Received request to stop the table")
	tableManager.Stop()
	c.JSON(http.StatusOK, gin.H{"status": "STOPPED"})
	if exitFunc != nil {
		exitFunc()
	}
}
