package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

type statusResponse struct {
	Response string         `json:"response"`
	Error    string         `json:"error,omitempty"`
	Status   *displayStatus `json:"status,omitempty"`
	Port     *portResponse  `json:"port,omitempty"`
}

type portResponse struct {
	Image  string `json:"image"`
	Code   int    `json:"code"`
	Glyph  string `json:"glyph"`
	Point  bool   `json:"point"`
	Other  string `json:"other"`
	Output string `json:"outputMask"`
}

// apiHandler - settings for the thing that handles HTTP requests
type apiHandler struct {
	rt     runtimeConfig
	user   string
	secret string
	realm  string
}

func newAPIHandler(rt runtimeConfig) *apiHandler {
	return &apiHandler{
		rt:     rt,
		user:   rt.settings.GetString(sStatusUser),
		secret: rt.settings.GetString(sStatusSecret),
		realm:  "bcdsegment",
	}
}

// BasicAuth - provide a middleware to authenticate users, a no-op when
// there is no secret configured
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.secret == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *apiHandler) getStatus() statusResponse {
	st, ok := m.rt.status.get()
	if !ok {
		return statusResponse{Response: "WAIT", Error: "display has not started"}
	}
	return statusResponse{Response: "OK", Status: &st}
}

// getPort samples the live port; it only reads, the display loop stays
// the sole writer
func (m *apiHandler) getPort() statusResponse {
	p, err := m.rt.port.Read()
	if err != nil {
		return statusResponse{Response: "BAD", Error: err.Error()}
	}
	l := m.rt.layout
	f := l.Unpack(p)
	return statusResponse{Response: "OK", Port: &portResponse{
		Image:  p.String(),
		Code:   int(f.Symbol),
		Glyph:  f.Symbol.String(),
		Point:  f.Point,
		Other:  f.Other.String(),
		Output: l.OutputMask().String(),
	}}
}

func writeAnswer(w http.ResponseWriter, sr statusResponse) {
	output, _ := json.Marshal(sr)
	w.Header().Set("Content-Type", "application/json")
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getStatus())
}

func (m *apiHandler) apiPort(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getPort())
}

func (m *apiHandler) apiReset(w http.ResponseWriter, r *http.Request) {
	m.rt.comms.requestReset()
	writeAnswer(w, statusResponse{Response: "OK"})
}

func (m *apiHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/status", http.StatusMovedPermanently)
}

func startStatusService(rt runtimeConfig) {
	if rt.settings.GetString(sStatusAddr) == "" {
		return
	}
	rt.logger = &ThreadLogger{name: "Status"}
	rt.wg.Add(1)
	go runStatusService(rt)
}

func runStatusService(rt runtimeConfig) {
	defer rt.wg.Done()

	handler := newAPIHandler(rt)
	rt.statusService.launch(handler, rt.settings.GetString(sStatusAddr))

	// nothing to do but wait for the end
	<-rt.comms.quit
	rt.logger.Println("quit from status service")
	rt.statusService.stop()
}
