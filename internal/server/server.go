package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/claidex/backend/internal/db"
	"github.com/claidex/backend/internal/queue"
	mid "github.com/claidex/backend/internal/server/middleware"
	"github.com/claidex/backend/internal/util"
	"github.com/claidex/backend/pkg/brief"
	pgdb "github.com/claidex/backend/pkg/db/pgx"
	"github.com/claidex/backend/pkg/logger"
	"github.com/claidex/backend/pkg/store"
	"github.com/claidex/backend/pkg/store/memory"
	neostore "github.com/claidex/backend/pkg/store/neo4j"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	if err := db.Migrate(util.GetEnv("DATABASE_URL"), util.GetEnv("MIGRATIONS_PATH")); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}

	graph := newGraphStore(ctx)

	// RabbitMQ is optional for the API; without it watchlist additions just
	// skip the summary refresh.
	var ch *amqp091.Channel
	if util.GetEnv("RABBITMQ_HOST") != "" {
		que := queue.Init()
		defer que.Close()
		ch, err = que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch, []string{queue.RiskRefreshQueue}); err != nil {
			logger.Fatal("Failed to set up queues", "err", err)
		}
	}

	var key *keyfunc.Keyfunc
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		key = &k
	}

	briefs := brief.NewAggregator(brief.NewAggregatorParams{
		Graph:   graph,
		Data:    pgdb.New(conn),
		Timeout: time.Duration(util.GetEnvNumeric("BRIEF_FETCH_TIMEOUT_S", 5)) * time.Second,
	})

	masterAPIKey := util.GetEnv("MASTER_API_KEY")
	masterUserID, _ := strconv.ParseInt(util.GetEnv("MASTER_USER_ID"), 10, 64)
	masterUserRole := util.GetEnv("MASTER_USER_ROLE")

	app := &mid.App{
		DBConn:         conn,
		Graph:          graph,
		Queue:          ch,
		Key:            key,
		Briefs:         briefs,
		MasterAPIKey:   masterAPIKey,
		MasterUserID:   masterUserID,
		MasterUserRole: masterUserRole,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// newGraphStore picks the graph backend. Neo4j is the production store; the
// in-memory adapter serves local development and tests.
func newGraphStore(ctx context.Context) store.GraphQuery {
	switch util.GetEnvString("GRAPH_ADAPTER", "neo4j") {
	case "memory":
		logger.Warn("Using in-memory graph store, data will not persist")
		return memory.NewStore()
	default:
		s, err := neostore.NewStore(ctx, neostore.NewStoreParams{
			URI:      util.GetEnv("NEO4J_URI"),
			User:     util.GetEnv("NEO4J_USER"),
			Password: util.GetEnv("NEO4J_PASSWORD"),
			Database: util.GetEnv("NEO4J_DATABASE"),
		})
		if err != nil {
			logger.Fatal("Failed to connect to graph store", "err", err)
		}
		return s
	}
}
