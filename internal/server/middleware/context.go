package middleware

import (
	"github.com/claidex/backend/pkg/brief"
	"github.com/claidex/backend/pkg/store"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rabbitmq/amqp091-go"
)

type AppUser struct {
	UserID int64
	Role   string
}

// App carries the shared clients every handler needs. Queue and Key are nil
// when RabbitMQ or the auth service are not configured.
type App struct {
	DBConn         *pgxpool.Pool
	Graph          store.GraphQuery
	Queue          *amqp091.Channel
	Key            *keyfunc.Keyfunc
	Briefs         *brief.Aggregator
	MasterAPIKey   string
	MasterUserID   int64
	MasterUserRole string
}

type AppContext struct {
	echo.Context
	App       *App
	User      *AppUser
	RequestID string
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID, err := gonanoid.New()
			if err != nil {
				requestID = "unknown"
			}
			cc := &AppContext{c, app, nil, requestID}
			cc.Response().Header().Set("X-Request-Id", requestID)
			return next(cc)
		}
	}
}

func IsAdmin(user *AppUser) bool {
	return user != nil && user.Role == "admin"
}
