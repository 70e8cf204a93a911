package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/flexdash-demo/internal/engine"
	"github.com/ivlev/flexdash-demo/internal/system"
)

// presentationRsp summarises one host
type presentationRsp struct {
	Name      string `json:"name"`
	Running   bool   `json:"running"`
	Paused    bool   `json:"paused"`
	RunID     string `json:"run_id,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
	TotalMS   int64  `json:"total_ms"`
	Scene     string `json:"scene"`
	Action    string `json:"action"`
	Loop      int64  `json:"loop"`
}

func describe(h *engine.Host) presentationRsp {
	pos := h.Position()
	return presentationRsp{
		Name:      h.Name(),
		Running:   h.Running(),
		Paused:    h.Paused(),
		RunID:     h.RunID(),
		ElapsedMS: h.Elapsed().Milliseconds(),
		TotalMS:   h.Total().Milliseconds(),
		Scene:     pos.SceneID,
		Action:    pos.Action.ID,
		Loop:      pos.Loop,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// hostOr404 looks up the {name} route variable
func (s *Server) hostOr404(w http.ResponseWriter, r *http.Request) (*engine.Host, bool) {
	name := mux.Vars(r)["name"]
	h, ok := s.hosts[name]
	if !ok {
		writeError(w, http.StatusNotFound, "presentation "+name+" not found")
		return nil, false
	}
	return h, true
}

func (s *Server) listPresentations(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]presentationRsp, 0, len(s.names))
	for _, name := range s.names {
		rsp = append(rsp, describe(s.hosts[name]))
	}
	writeJSON(w, http.StatusOK, rsp)
}

func (s *Server) getPresentation(w http.ResponseWriter, r *http.Request) {
	if h, ok := s.hostOr404(w, r); ok {
		writeJSON(w, http.StatusOK, describe(h))
	}
}

func (s *Server) getFrame(w http.ResponseWriter, r *http.Request) {
	h, ok := s.hostOr404(w, r)
	if !ok {
		return
	}
	if !h.Running() {
		writeJSON(w, http.StatusOK, h.FrameAt(0))
		return
	}
	writeJSON(w, http.StatusOK, h.Frame())
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	h, ok := s.hostOr404(w, r)
	if !ok {
		return
	}
	data, err := yaml.Marshal(h.Schedule())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	h, ok := s.hostOr404(w, r)
	if !ok {
		return
	}
	h.Start()
	s.run(s.ctx, h)
	writeJSON(w, http.StatusOK, describe(h))
}

func (s *Server) stop(w http.ResponseWriter, r *http.Request) {
	if h, ok := s.hostOr404(w, r); ok {
		h.Stop()
		writeJSON(w, http.StatusOK, describe(h))
	}
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) {
	if h, ok := s.hostOr404(w, r); ok {
		h.Pause()
		writeJSON(w, http.StatusOK, describe(h))
	}
}

func (s *Server) resume(w http.ResponseWriter, r *http.Request) {
	if h, ok := s.hostOr404(w, r); ok {
		h.Resume()
		writeJSON(w, http.StatusOK, describe(h))
	}
}

type nowRsp struct {
	Now       time.Time        `json:"now"`
	ElapsedMS map[string]int64 `json:"elapsed_ms"`
}

func (s *Server) now(w http.ResponseWriter, _ *http.Request) {
	rsp := nowRsp{Now: time.Now().UTC(), ElapsedMS: make(map[string]int64, len(s.hosts))}
	for name, h := range s.hosts {
		rsp.ElapsedMS[name] = h.Elapsed().Milliseconds()
	}
	writeJSON(w, http.StatusOK, rsp)
}

func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	res, err := system.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
