package routes

import (
	"errors"
	"net/http"
	"strings"

	"relate/internal/server/middleware"
	"relate/pkg/common"
	"relate/pkg/graph"
	"relate/pkg/logger"

	"github.com/labstack/echo/v4"
)

// maxAnalyzeChars bounds the accepted input size for one analysis request.
const maxAnalyzeChars = 10000

type analyzeBody struct {
	Text string `json:"text" validate:"required"`
}

type analyzeResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message,omitempty"`
	Text          string              `json:"text,omitempty"`
	Relationships []common.Triplet    `json:"relationships"`
	Count         int                 `json:"count"`
	Graph         common.GraphPayload `json:"graph"`
}

// AnalyzeHandler runs the full extraction pipeline over the posted text
// and returns the accepted relationships with the rendering payload.
func AnalyzeHandler(c echo.Context) error {
	data := new(analyzeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}

	if strings.TrimSpace(data.Text) == "" {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Text must not be empty",
		})
	}
	if len(data.Text) > maxAnalyzeChars {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Text exceeds the maximum length of 10000 characters",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	result, err := app.Graph.Analyze(ctx, app.Extractor, data.Text)
	if err != nil {
		if errors.Is(err, graph.ErrMalformedInput) {
			return c.JSON(http.StatusBadRequest, analyzeResponse{
				Message: "Text must not be empty",
			})
		}
		if errors.Is(err, graph.ErrServiceUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, analyzeResponse{
				Message: "Knowledge graph service unavailable",
			})
		}
		logger.Error("Analysis failed", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}

	triplets := result.Triplets
	if triplets == nil {
		triplets = []common.Triplet{}
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		Success:       true,
		Text:          data.Text,
		Relationships: triplets,
		Count:         len(triplets),
		Graph:         graph.BuildGraphPayload(triplets),
	})
}
