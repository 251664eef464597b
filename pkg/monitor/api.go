/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/canlab/go-canmon/pkg/config"
	"github.com/canlab/go-canmon/pkg/log"
)

const (
	// ApiTimeout bounds how long an API request waits for the control
	// loop. The loop blocks during macro bursts, so this must exceed the
	// longest burst.
	ApiTimeout = 5 * time.Second
)

type apiRequest struct {
	line  string
	reply chan string
}

// Do funnels one command line through the control loop and returns what the
// dispatch printed. It is the only way other goroutines reach the loop-owned
// state.
func (m *Monitor) Do(line string) (string, error) {
	req := apiRequest{line: line, reply: make(chan string, 1)}
	select {
	case m.chApi <- req:
	case <-time.After(ApiTimeout):
		return "", ErrLoopBusy{}
	}
	select {
	case out := <-req.reply:
		return out, nil
	case <-time.After(ApiTimeout):
		return "", ErrLoopBusy{}
	}
}

// CommandResult ...
type CommandResult struct {
	Output string `json:"output"`
}

// SendRequest carries one frame literal, e.g. {"frame": "0x123 0xAA 0xBB"}
type SendRequest struct {
	Frame string `json:"frame"`
}

type ApiServer struct {
	context.Context
	*config.Config
	Router *mux.Router
	mon    *Monitor
}

func NewApiServer(ctx context.Context, cfg *config.Config, mon *Monitor) *ApiServer {
	log.Info("Initializing API server with address: %s", cfg.Api.Address)
	return &ApiServer{
		Context: ctx,
		Config:  cfg,
		mon:     mon,
	}
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/stats", s.handleCommand("STATS")).Methods("GET")
	subRouter.HandleFunc("/cache", s.handleCommand("DUMP")).Methods("GET")
	subRouter.HandleFunc("/clear", s.handleCommand("CLEAR")).Methods("POST")
	subRouter.HandleFunc("/send", s.handleSend()).Methods("POST")
}

// Run starts the API server. It blocks, run it on its own goroutine.
func (s *ApiServer) Run() error {
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.LoggingHandler(os.Stderr, s.Router),
		Addr:    s.Config.Api.Address,
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) respond(w http.ResponseWriter, output string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CommandResult{Output: output})
}

func (s *ApiServer) handleCommand(line string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := s.mon.Do(line)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.respond(w, output)
	}
}

func (s *ApiServer) handleSend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendReq := &SendRequest{}
		if err := json.NewDecoder(r.Body).Decode(sendReq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if sendReq.Frame == "" {
			http.Error(w, "frame is required", http.StatusBadRequest)
			return
		}
		output, err := s.mon.Do(sendReq.Frame)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.respond(w, output)
	}
}
