package turret

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	domain "github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/logger"
	"github.com/oshokin/radar-turret/web"
)

// Controller abstracts the engine operations the transport layer depends on.
type Controller interface {
	Status() domain.Status
	ToggleScanning(ctx context.Context) (bool, error)
	SetMode(ctx context.Context, index int) error
	Settings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (domain.Settings, error)
	ResetSettings(ctx context.Context) (domain.Settings, error)
	SyncTime(ctx context.Context, epoch int64) error
}

// EventLog abstracts the detection log the panel reads and wipes.
type EventLog interface {
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Server implements the panel HTTP API.
type Server struct {
	// controller provides the control-loop operations.
	controller Controller
	// events provides the detection log.
	events EventLog
}

// NewServer wires the provided controller and event log into an HTTP handler.
func NewServer(controller Controller, events EventLog) *Server {
	return &Server{
		controller: controller,
		events:     events,
	}
}

// Handler returns the complete panel surface with request logging attached.
func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.ServeMux())
}

// ServeMux registers every panel route. All routes are GET because the
// embedded page drives them with bare fetch() calls.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/status", s.status)
	mux.HandleFunc("/toggle", s.toggle)
	mux.HandleFunc("/mode", s.setMode)
	mux.HandleFunc("/get_config", s.getConfig)
	mux.HandleFunc("/save_config", s.saveConfig)
	mux.HandleFunc("/reset_config", s.resetConfig)
	mux.HandleFunc("/get_logs", s.getLogs)
	mux.HandleFunc("/clear_logs", s.clearLogs)
	mux.HandleFunc("/time_sync", s.timeSync)
	mux.HandleFunc("/healthz", s.healthz)

	return mux
}

// statusResponse mirrors the compact keys the embedded panel polls for.
// Mode is the panel button index and running is 1/0, matching the page's
// numeric truthiness checks.
type statusResponse struct {
	Angle          int `json:"a"`
	DistanceCM     int `json:"d"`
	MaxRangeCM     int `json:"r"`
	Mode           int `json:"mode"`
	Running        int `json:"running"`
	LastAngle      int `json:"li_a"`
	LastDistanceCM int `json:"li_d"`
}

// configResponse mirrors the short keys of the panel's config modal.
type configResponse struct {
	MaxRangeCM   int   `json:"dst"`
	LockMS       int   `json:"lck"`
	MinAngle     int   `json:"min"`
	MaxAngle     int   `json:"max"`
	Brightness   uint8 `json:"bri"`
	AudioEnabled bool  `json:"aud"`
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(web.Index)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	st := s.controller.Status()

	resp := statusResponse{
		Angle:          st.Angle,
		DistanceCM:     st.DistanceCM,
		MaxRangeCM:     st.MaxRangeCM,
		Mode:           int(st.Mode),
		LastAngle:      st.LastAngle,
		LastDistanceCM: st.LastDistanceCM,
	}
	if st.Running {
		resp.Running = 1
	}

	writeJSON(r.Context(), w, resp)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	running, err := s.controller.ToggleScanning(r.Context())
	if err != nil {
		http.Error(w, "unable to toggle scanning", http.StatusInternalServerError)

		return
	}

	state := 0
	if running {
		state = 1
	}

	writeJSON(r.Context(), w, map[string]int{"running": state})
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("m"))
	if err != nil || index < 0 || index >= domain.ModeCount() {
		http.Error(w, "mode index out of range", http.StatusBadRequest)

		return
	}

	if err = s.controller.SetMode(r.Context(), index); err != nil {
		http.Error(w, "unable to select mode", http.StatusInternalServerError)

		return
	}

	writeJSON(r.Context(), w, map[string]int{"mode": index})
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.controller.Settings(r.Context())
	if err != nil {
		http.Error(w, "unable to read settings", http.StatusInternalServerError)

		return
	}

	writeJSON(r.Context(), w, toConfigResponse(cfg))
}

// saveConfig applies the config modal's query parameters. The four sliders
// are required; brightness and audio are optional extras that keep their
// current values when absent. Any malformed value rejects the whole request
// before anything is mutated.
func (s *Server) saveConfig(w http.ResponseWriter, r *http.Request) {
	current, err := s.controller.Settings(r.Context())
	if err != nil {
		http.Error(w, "unable to read settings", http.StatusInternalServerError)

		return
	}

	query := r.URL.Query()
	next := current

	required := []struct {
		key  string
		dest *int
	}{
		{"d", &next.MaxRangeCM},
		{"l", &next.LockMS},
		{"mn", &next.MinAngle},
		{"mx", &next.MaxAngle},
	}

	for _, p := range required {
		value, convErr := strconv.Atoi(query.Get(p.key))
		if convErr != nil {
			http.Error(w, "invalid value for "+p.key, http.StatusBadRequest)

			return
		}

		*p.dest = value
	}

	if raw := query.Get("br"); raw != "" {
		value, convErr := strconv.Atoi(raw)
		if convErr != nil || value < 0 || value > 255 {
			http.Error(w, "invalid value for br", http.StatusBadRequest)

			return
		}

		next.Brightness = uint8(value)
	}

	if raw := query.Get("au"); raw != "" {
		value, convErr := strconv.ParseBool(raw)
		if convErr != nil {
			http.Error(w, "invalid value for au", http.StatusBadRequest)

			return
		}

		next.AudioEnabled = value
	}

	applied, err := s.controller.UpdateSettings(r.Context(), next)
	if err != nil {
		http.Error(w, "unable to apply settings", http.StatusInternalServerError)

		return
	}

	writeJSON(r.Context(), w, toConfigResponse(applied))
}

func (s *Server) resetConfig(w http.ResponseWriter, r *http.Request) {
	applied, err := s.controller.ResetSettings(r.Context())
	if err != nil {
		http.Error(w, "unable to reset settings", http.StatusInternalServerError)

		return
	}

	writeJSON(r.Context(), w, toConfigResponse(applied))
}

func (s *Server) getLogs(w http.ResponseWriter, r *http.Request) {
	text, err := s.events.Read(r.Context())
	if err != nil {
		http.Error(w, "unable to read event log", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) clearLogs(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Clear(r.Context()); err != nil {
		http.Error(w, "unable to clear event log", http.StatusInternalServerError)

		return
	}

	writeJSON(r.Context(), w, map[string]string{"status": "cleared"})
}

func (s *Server) timeSync(w http.ResponseWriter, r *http.Request) {
	epoch, err := strconv.ParseInt(r.URL.Query().Get("ts"), 10, 64)
	if err != nil || epoch < 0 {
		http.Error(w, "invalid or missing ts", http.StatusBadRequest)

		return
	}

	if err = s.controller.SyncTime(r.Context(), epoch); err != nil {
		http.Error(w, "unable to sync time", http.StatusInternalServerError)

		return
	}

	writeJSON(r.Context(), w, map[string]string{"status": "synced"})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, map[string]string{"status": "ok"})
}

// toConfigResponse converts a tuning record into the panel's config JSON.
func toConfigResponse(s domain.Settings) configResponse {
	return configResponse{
		MaxRangeCM:   s.MaxRangeCM,
		LockMS:       s.LockMS,
		MinAngle:     s.MinAngle,
		MaxAngle:     s.MaxAngle,
		Brightness:   s.Brightness,
		AudioEnabled: s.AudioEnabled,
	}
}

// writeJSON renders v as a JSON response body.
func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WarnKV(ctx, "Failed to encode response", "error", err)
	}
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter

	code int
}

// WriteHeader records the status code before delegating.
func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs method, path, status and duration of every request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(recorder, r)

		logger.InfoKV(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.code,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
