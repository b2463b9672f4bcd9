package middleware

import (
	"relate/pkg/graph"
	"relate/pkg/ner"

	"github.com/labstack/echo/v4"
)

// App holds the pipeline clients shared by all request handlers.
type App struct {
	Extractor ner.Extractor
	Graph     *graph.GraphClient
}

// AppContext wraps the echo context with the application clients.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the App to every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{
				Context: c,
				App:     app,
			})
		}
	}
}
