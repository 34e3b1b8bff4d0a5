package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/trailmark/trailmark-backend/internal/auth"
	"github.com/trailmark/trailmark-backend/internal/background"
	"github.com/trailmark/trailmark-backend/internal/gameboard"
	"github.com/trailmark/trailmark-backend/internal/notification"
	"github.com/trailmark/trailmark-backend/internal/pkg/events"
	"github.com/trailmark/trailmark-backend/internal/pkg/middleware"
	"github.com/trailmark/trailmark-backend/internal/pkg/pubsub"
	"github.com/trailmark/trailmark-backend/internal/pkg/ws"
	"github.com/trailmark/trailmark-backend/internal/route"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupViper()
	setupZerolog()

	db := setupDb()

	mirrorEvents := viper.GetBool("EVENT_TOPIC_ENABLED")
	if mirrorEvents {
		pubsub.InitPubSub()
		defer func() { pubsub.CloseClient() }()
	}

	eventLog := events.NewLog()
	hub := ws.NewNotificationHub()
	recorder := events.NewRecorder(eventLog, hub, mirrorEvents)

	apiRouter := setupApiRouter(db, eventLog, hub, recorder)

	port := viper.GetString("PORT")
	server := &http.Server{
		Addr:        port,
		Handler:     apiRouter,
		ReadTimeout: 10 * time.Second,
		// no write timeout: the SSE feed holds its response open indefinitely
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupDb() *gorm.DB {
	dbUrl := viper.GetString("DB_URL")

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	deadline := time.Now().Add(60 * time.Second)

	var db *gorm.DB
	var err error
	for {
		db, err = gorm.Open(postgres.Open(dbUrl), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		log.Warn().Err(err).Msg("Database not reachable yet, will retry")
		time.Sleep(b.Duration())
	}

	sqlDb, _ := db.DB()
	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	return db
}

func setupApiRouter(db *gorm.DB, eventLog *events.Log, hub *ws.NotificationHub, recorder *events.Recorder) *gin.Engine {
	apiRouter := gin.Default()
	routerGroup := apiRouter.Group("/api")

	middleware.RegisterGlobalMiddleware(apiRouter)

	auth.RegisterRoutes(routerGroup, db)
	background.RegisterRoutes(routerGroup, db)
	route.RegisterRoutes(routerGroup, db)
	gameboard.RegisterRoutes(routerGroup, db, recorder)
	notification.RegisterRoutes(routerGroup, eventLog, hub)

	return apiRouter
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
	_ = viper.ReadInConfig()
	viper.SetDefault("PORT", ":8080")
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
