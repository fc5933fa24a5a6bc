package hc

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"lending/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/twitchtv/twirp"
)

// Check returns an error when the dependency it covers is unusable
type Check func(ctx context.Context) error

// Handle reports uptime, version and the result of every check,
// 503 if any check fails
func Handle(version string, checks map[string]Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(version, checks))
	return r
}

func handle(version string, checks map[string]Check) http.HandlerFunc {
	started := time.Now()

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		results := render.H{}
		var failed []string
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				results[name] = err.Error()
				failed = append(failed, name)
				continue
			}

			results[name] = "ok"
		}

		if len(failed) > 0 {
			render.Error(w, twirp.NewError(twirp.Unavailable, "unhealthy: "+strings.Join(failed, ",")))
			return
		}

		render.JSON(w, render.H{
			"uptime":  time.Since(started).Truncate(time.Millisecond).String(),
			"version": version,
			"checks":  results,
		})
	}
}
