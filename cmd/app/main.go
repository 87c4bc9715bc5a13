package main

import (
	"resalab/config"
	"resalab/di"
)

// @title resalab API
// @version 1.0
// @description Room reservation service: reservations and salles with their equipments.
// @BasePath /
func main() {
	cfg := config.Get()

	di.Bootstrap(cfg)

	app := di.InitializeService()
	app.Run()
}
