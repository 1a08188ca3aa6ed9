package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"
)

type httpStatusService struct {
	srv     *http.Server
	handler *apiHandler
	done    chan struct{}
}

func newStatusRouter(handler *apiHandler) *mux.Router {
	r := mux.NewRouter()

	// auth middleware
	r.Use(handler.BasicAuth)
	// api server
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/port", handler.apiPort).Methods("GET")
	r.HandleFunc("/api/reset", handler.apiReset).Methods("POST")

	// root handler
	r.HandleFunc("/", handler.rootHandler)
	return r
}

func (h *httpStatusService) launch(handler *apiHandler, addr string) {
	h.handler = handler
	h.srv = &http.Server{Addr: addr, Handler: newStatusRouter(handler)}
	h.done = make(chan struct{})

	// launch the server
	go func() {
		defer close(h.done)
		log.Printf("starting status service on %s", addr)
		err := h.srv.ListenAndServe()
		if err != http.ErrServerClosed {
			log.Print(err)
		}
		log.Print("Exiting status service")
	}()
}

func (h *httpStatusService) stop() {
	if h.srv == nil {
		return
	}
	h.srv.Shutdown(context.Background())
	<-h.done
}
