package middleware

import (
	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
)

// App holds the shared dependencies of all handlers. Enqueue and S3 are nil
// when the server runs without RabbitMQ or a bucket.
type App struct {
	Fetcher wikidata.EntityFetcher
	Config  setup.Config
	Enqueue func(queueName string, data []byte) error
	S3      *s3.Client
	APIKey  string
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
