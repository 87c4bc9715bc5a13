package handler

import (
	"net/http"
	"resalab/config"
	"resalab/di"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler serves requests on serverless platforms, building the service on the first call.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		di.Bootstrap(config.Get())

		app = di.InitializeService().HTTP.Handler()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
