// Package cbinspect is a minimal read-only HTTP surface for inspecting a
// running cbdriver.Driver, used by cbintegration's example harness for
// interactive debugging. It is not a production admin API: no auth, no
// metrics, no persistence -- just two JSON routes over whatever Drivers
// are registered with it.
package cbinspect

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbdriver"
)

// Server serves read-only JSON snapshots of whichever Drivers have been
// registered with it via Register.
type Server struct {
	mu      sync.RWMutex
	drivers map[uuid.UUID]*cbdriver.Driver

	router *mux.Router
}

// NewServer builds a Server with its routes wired, ready for
// http.ListenAndServe or httptest.NewServer.
func NewServer() *Server {
	s := &Server{
		drivers: make(map[uuid.UUID]*cbdriver.Driver),
	}
	r := mux.NewRouter()
	r.HandleFunc("/driver/{id}/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/driver/{id}/votes/{round}", s.handleVotes).Methods(http.MethodGet)
	s.router = r
	return s
}

// Register makes d visible at /driver/{d.ID()}/....
func (s *Server) Register(d *cbdriver.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers[d.ID()] = d
}

// Deregister removes a previously registered Driver, e.g. once a test
// harness tears it down.
func (s *Server) Deregister(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drivers, id)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) driverByID(w http.ResponseWriter, r *http.Request) (*cbdriver.Driver, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid driver id", http.StatusBadRequest)
		return nil, false
	}
	s.mu.RLock()
	d, ok := s.drivers[id]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "no such driver", http.StatusNotFound)
		return nil, false
	}
	return d, true
}

// stateView is the JSON shape returned by /driver/{id}/state.
type stateView struct {
	Height       cbconsensus.Height `json:"height"`
	Round        string             `json:"round"`
	Step         string             `json:"step"`
	Decided      bool               `json:"decided"`
	DecidedValue string             `json:"decided_value,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	d, ok := s.driverByID(w, r)
	if !ok {
		return
	}
	st := d.State()
	view := stateView{
		Height: d.Height(),
		Round:  st.Round.String(),
		Step:   st.Step.String(),
	}
	if st.Decision != nil {
		view.Decided = true
		view.DecidedValue = st.Decision.Proposal.Value.ID().String()
	}
	writeJSON(w, view)
}

// voteView is one entry in /driver/{id}/votes/{round}'s response.
type voteView struct {
	Kind  string `json:"kind"`
	Voter string `json:"voter"`
	Value string `json:"value,omitempty"`
}

func (s *Server) handleVotes(w http.ResponseWriter, r *http.Request) {
	d, ok := s.driverByID(w, r)
	if !ok {
		return
	}
	roundStr := mux.Vars(r)["round"]
	n, err := strconv.ParseUint(roundStr, 10, 32)
	if err != nil {
		http.Error(w, "invalid round", http.StatusBadRequest)
		return
	}

	round := cbconsensus.NewRound(uint32(n))
	votes := d.VotesInRound(round)
	views := make([]voteView, 0, len(votes))
	for _, sv := range votes {
		v := voteView{
			Kind:  sv.Vote.Kind.String(),
			Voter: string(sv.Vote.Voter),
		}
		if id, ok := sv.Vote.Value.Unwrap(); ok {
			v.Value = id.String()
		}
		views = append(views, v)
	}
	writeJSON(w, views)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
