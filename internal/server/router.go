package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AdeptTravel/adept-theme/internal/config"
	"github.com/AdeptTravel/adept-theme/internal/fsutil"
	"github.com/AdeptTravel/adept-theme/internal/middleware"
	"github.com/AdeptTravel/adept-theme/internal/theme"
	"github.com/AdeptTravel/adept-theme/internal/view"
)

// HomeView is rendered for GET /.
const HomeView = "welcome"

// themeSummary is the JSON shape of one entry in GET /themes.
type themeSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Version     string `json:"version"`
	Parent      string `json:"parent,omitempty"`
	Screenshot  string `json:"screenshot,omitempty"`
	Active      bool   `json:"active"`
}

// Router builds the HTTP surface of the theme layer:
//
//	GET /                          home view of the active theme
//	GET /themes                    installed themes as JSON
//	GET /themes/{theme}/assets/*   theme asset with parent fallback
//	GET /metrics                   prometheus
//	GET /healthz                   liveness
//
// With theme.symlink on, the symlink directory is also served as-is under
// its path relative to the public directory.
func Router(cfg *config.Config, m *theme.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	if cfg.HTTP.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", homeHandler(m))
	r.Get("/themes", listHandler(m))
	r.Get("/themes/{theme}/assets/*", assetHandler(m))

	if cfg.Theme.Symlink {
		prefix := "/" + strings.Trim(fsutil.Rel(cfg.Theme.PublicPath, cfg.Theme.SymlinkPath), "/")
		if prefix != "/" && prefix != "/themes" {
			fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Theme.SymlinkPath)))
			r.Handle(prefix+"/*", fs)
		}
	}
	return r
}

func homeHandler(m *theme.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := m.CurrentInfo()
		if err != nil {
			http.NotFound(w, r)
			return
		}
		var buf bytes.Buffer
		if err := m.Render(&buf, HomeView, map[string]any{"Theme": info}); err != nil {
			if errors.Is(err, view.ErrNotFound) || errors.Is(err, theme.ErrThemeNotFound) {
				http.NotFound(w, r)
				return
			}
			zap.S().Errorw("render failed", "view", HomeView, "theme", info.Name, "err", err)
			http.Error(w, "template error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

func listHandler(m *theme.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		list, err := m.List()
		if err != nil {
			zap.S().Errorw("theme scan failed", "err", err)
			http.Error(w, "scan failed", http.StatusInternalServerError)
			return
		}
		current := m.Current()
		out := make([]themeSummary, 0, len(list))
		for _, t := range list {
			out = append(out, themeSummary{
				Name:        t.Name,
				Title:       t.Title,
				Description: t.Description,
				Author:      t.Author,
				Version:     t.Version,
				Parent:      t.Parent,
				Screenshot:  t.Screenshot,
				Active:      t.Name == current,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			zap.S().Warnw("theme list write failed", "err", err)
		}
	}
}

func assetHandler(m *theme.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "theme")
		file, err := m.AssetFile(name, chi.URLParam(r, "*"))
		switch {
		case err == nil:
		case errors.Is(err, theme.ErrBadAssetPath):
			http.Error(w, "bad asset path", http.StatusBadRequest)
			return
		case errors.Is(err, theme.ErrThemeNotFound), errors.Is(err, os.ErrNotExist):
			http.NotFound(w, r)
			return
		default:
			zap.S().Errorw("asset lookup failed", "theme", name, "err", err)
			http.Error(w, "asset error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		http.ServeFile(w, r, filepath.Clean(file))
	}
}
