package handler

import (
	"context"
	"net/http"

	"github.com/G00gleKid/demo-code/pkg/config"
	"github.com/G00gleKid/demo-code/pkg/logging"
	"github.com/G00gleKid/demo-code/pkg/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv(".env", "../.env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg.LogFormat = "json"

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "")
	if err != nil {
		panic(err)
	}

	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("could not initialize", zap.Error(err))
	}
	r = app.Router
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
