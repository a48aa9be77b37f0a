package main

import (
	"github.com/claidex/backend/internal/server"
	"github.com/claidex/backend/internal/util"
	"github.com/claidex/backend/pkg/logger"
	"github.com/claidex/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
