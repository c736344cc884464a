// Package server serves the aggregate listening statistics as json.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vvmm/scrobbledb/db"
)

// Run serves statistics on addr until the context is canceled.
func Run(ctx context.Context, database *db.DB, addr string) error {
	srv := http.Server{Addr: addr, Handler: Handler(database)}

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Handler builds the routes; split out from Run so tests can hit them
// without a listener.
func Handler(database *db.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/users", func(w http.ResponseWriter, req *http.Request) {
		users, err := database.Users(req.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, users)
	})

	r.Get("/users/{username}/tracks", statsHandler(database.TopTracks))
	r.Get("/users/{username}/artists", statsHandler(database.TopArtists))
	r.Get("/users/{username}/albums", statsHandler(database.TopAlbums))
	r.Get("/users/{username}/genres", statsHandler(database.TopGenres))

	return r
}

func statsHandler(query func(ctx context.Context, username string, limit int) ([]db.UserStat, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		username := chi.URLParam(req, "username")

		limit := 10
		if s := req.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		rows, err := query(req.Context(), username, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.Encode(v)
}
