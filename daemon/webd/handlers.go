package webd

import (
	"context"
	"encoding/json"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/viewer"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"net/http"
	"strconv"
	"time"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type viewerStatus struct {
	Level      s2.CellLevel `json:"level"`
	Generation uint64       `json:"generation"`
	Source     string       `json:"source"`
	Loading    bool         `json:"loading"`
	Failure    string       `json:"failure,omitempty"`
	NCells     int          `json:"ncells"`
	Stats      viewer.Stats `json:"stats"`
}

type webDaemonStatus struct {
	StartedAt      time.Time               `json:"started_at"`
	Uptime         string                  `json:"uptime"`
	Config         *params.WebDaemonConfig `json:"config"`
	WebsocketConns int                     `json:"websocket_conns"`
	CachedDatasets []s2.CellLevel          `json:"cached_datasets"`
	Viewer         *viewerStatus           `json:"viewer,omitempty"`
	RecentLoads    []broadstatus           `json:"recent_loads"`
}

func (s *WebDaemon) statusReport(w http.ResponseWriter, r *http.Request) {
	status := webDaemonStatus{
		StartedAt:      s.started,
		Uptime:         time.Since(s.started).Round(time.Second).String(),
		Config:         s.Config,
		CachedDatasets: s.datasets.Keys(),
		RecentLoads:    s.recent.Get(),
	}
	if s.melodyInstance != nil {
		status.WebsocketConns = s.melodyInstance.Len()
	}
	if s.viewer != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		st, err := s.viewer.State(ctx)
		if err != nil {
			s.logger.Warn("Failed to get viewer state", "error", err)
		} else {
			status.Viewer = &viewerStatus{
				Level:      st.CurrentLevel,
				Generation: st.Generation,
				Source:     st.Source,
				Loading:    st.Loading,
				Failure:    st.Failure,
				NCells:     st.NCells(),
				Stats:      s.viewer.Stats(),
			}
		}
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

// handleLevelDataset serves a level's cell dataset.
// A file in the data directory wins; otherwise the dataset is generated and cached.
func (s *WebDaemon) handleLevelDataset(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["level"])
	if err != nil {
		http.Error(w, "invalid level", http.StatusBadRequest)
		return
	}
	level := s2.CellLevel(n)
	if !params.IsSupportedLevel(s.Config.DataLevels, level) {
		http.Error(w, "no dataset for level", http.StatusNotFound)
		return
	}

	if s.flat != nil && s.flat.HasDataset(level) {
		s.logger.Debug("Serving dataset file", "level", level, "path", s.flat.DatasetPath(level))
		http.ServeFile(w, r, s.flat.DatasetPath(level))
		return
	}

	body, ok := s.datasets.Get(level)
	if !ok {
		start := time.Now()
		ds, err := s2.LevelDataset(level)
		if err != nil {
			s.logger.Error("Failed to generate dataset", "level", level, "error", err)
			http.Error(w, "failed to generate dataset", http.StatusInternalServerError)
			return
		}
		body, err = json.Marshal(ds)
		if err != nil {
			s.logger.Error("Failed to encode dataset", "level", level, "error", err)
			http.Error(w, "failed to encode dataset", http.StatusInternalServerError)
			return
		}
		s.datasets.Add(level, body)
		s.logger.Info("Generated dataset", "level", level, "ncells", ds.NCells,
			"size", humanize.Bytes(uint64(len(body))), "elapsed", time.Since(start).Round(time.Millisecond))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
