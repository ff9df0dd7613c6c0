package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pipspect/pipspect/pkg/cache"
	apierrors "github.com/pipspect/pipspect/pkg/errors"
	"github.com/pipspect/pipspect/pkg/warehouse"
	"github.com/pipspect/pipspect/pkg/wheel"
)

// newServeCmd creates the serve command.
func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose project lookups as a JSON API",
		Long: `Serve the same lookups the CLI performs over HTTP:

  GET /api/v1/projects/{name}                 project metadata
  GET /api/v1/projects/{name}/{version}       release metadata
  GET /api/v1/projects/{name}/{version}/best  selected artifact (?pick=sdist|<tag>)

A version segment of "latest" resolves like the CLI default: the
newest release that has not been yanked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := flags.client(ctx)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(client, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// apiError is the JSON error body.
type apiError struct {
	Code      apierrors.Code `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
}

func newRouter(client *warehouse.Client, logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Route("/api/v1/projects/{name}", func(r chi.Router) {
		r.Get("/", handleProject(client))
		r.Get("/{version}", handleRelease(client))
		r.Get("/{version}/best", handleBest(client))
	})
	return r
}

type requestIDKey struct{}

// requestID tags every request with a UUID, echoed in the response and
// available to handlers through the context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond),
				"request_id", r.Context().Value(requestIDKey{}),
			)
		})
	}
}

func handleProject(client *warehouse.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := client.Project(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

// releaseParam treats "latest" as the empty selector so the path always
// has a version segment.
func releaseParam(r *http.Request) (name, version string) {
	name = chi.URLParam(r, "name")
	version = chi.URLParam(r, "version")
	if version == "latest" {
		version = ""
	}
	return name, version
}

func handleRelease(client *warehouse.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, version := releaseParam(r)
		release, err := client.ResolveRelease(r.Context(), name, version)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, release)
	}
}

func handleBest(client *warehouse.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, version := releaseParam(r)
		release, err := client.ResolveRelease(r.Context(), name, version)
		if err != nil {
			writeError(w, r, err)
			return
		}
		dist, err := warehouse.PickDistribution(release, r.URL.Query().Get("pick"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, dist)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to HTTP statuses and machine-readable
// codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := apierrors.ErrCodeInternal

	switch {
	case errors.Is(err, cache.ErrNotFound):
		status, code = http.StatusNotFound, apierrors.ErrCodeProjectNotFound
	case errors.Is(err, wheel.ErrNoMatch):
		status, code = http.StatusNotFound, apierrors.ErrCodeNoDistribution
	case errors.Is(err, wheel.ErrInvalidName):
		status, code = http.StatusBadRequest, apierrors.ErrCodeInvalidName
	case errors.Is(err, warehouse.ErrInvalidVersion):
		status, code = http.StatusBadRequest, apierrors.ErrCodeInvalidVersion
	case errors.Is(err, wheel.ErrInvalidTag):
		status, code = http.StatusBadRequest, apierrors.ErrCodeInvalidTag
	case errors.Is(err, cache.ErrNetwork):
		status, code = http.StatusBadGateway, apierrors.ErrCodeNetwork
	}

	id, _ := r.Context().Value(requestIDKey{}).(string)
	writeJSON(w, status, apiError{
		Code:      code,
		Message:   err.Error(),
		RequestID: id,
	})
}
