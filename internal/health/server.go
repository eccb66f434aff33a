package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Status is the payload returned from the health check endpoint
type Status struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type Server struct {
	startedAt time.Time
	now       func() time.Time
}

func NewServer(startedAt time.Time) *Server {
	return &Server{
		startedAt: startedAt,
		now:       time.Now,
	}
}

func (s *Server) RegisterRoutes(r *mux.Router) {
	r.Path("/health").Methods("GET").Handler(s)
}

func (s *Server) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	now := s.now()
	status := Status{
		Status:    "ok",
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Uptime:    now.Sub(s.startedAt).Seconds(),
	}
	res.Header().Set("content-type", "application/json")
	if err := json.NewEncoder(res).Encode(status); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}
