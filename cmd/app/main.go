package main

import (
	"fieldbook/config"
	"fieldbook/di"
	"fieldbook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
