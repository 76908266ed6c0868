package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/store"
)

var servePort int

// runner evaluates one listing.
type runner interface {
	Run(ctx context.Context, req model.ListingRequest) (*model.ReputationReport, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for reputation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSec), cfg.Server.Burst)
		router := buildRouter(env.Pipeline, env.Store, limiter, cfg.Server.AllowedOrigins)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the HTTP API. st may be nil when no history is kept;
// limiter may be nil to disable throttling.
func buildRouter(run runner, st store.Store, limiter *rate.Limiter, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/analyze_reputation", func(w http.ResponseWriter, req *http.Request) {
		if limiter != nil && !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		var body model.ListingRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := body.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rep, err := run.Run(req.Context(), body)
		if err != nil && rep == nil {
			zap.L().Error("analyze_reputation failed",
				zap.String("listing", body.Name),
				zap.String("location", body.Location),
				zap.Error(err),
			)
			msg := err.Error()
			if errors.Is(err, model.ErrNoData) {
				msg = "no listing found"
			}
			writeError(w, statusForError(err), msg)
			return
		}
		if err != nil {
			zap.L().Warn("analyze_reputation: report not persisted", zap.String("report_id", rep.ID), zap.Error(err))
		}
		writeJSON(w, http.StatusOK, rep)
	})

	r.Get("/reports", func(w http.ResponseWriter, req *http.Request) {
		if st == nil {
			writeError(w, http.StatusNotImplemented, store.ErrHistoryUnsupported.Error())
			return
		}
		q := req.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))

		reports, err := st.ListReports(req.Context(), store.ReportFilter{
			ListingName:    q.Get("listing"),
			Recommendation: model.Recommendation(q.Get("recommendation")),
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		if reports == nil {
			reports = []model.ReputationReport{}
		}
		writeJSON(w, http.StatusOK, reports)
	})

	r.Get("/reports/{id}", func(w http.ResponseWriter, req *http.Request) {
		if st == nil {
			writeError(w, http.StatusNotImplemented, store.ErrHistoryUnsupported.Error())
			return
		}
		rep, err := st.GetReport(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rep)
	})

	return r
}

// statusForError maps pipeline and store failures onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoData), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrAcquisition), errors.Is(err, model.ErrPollTimeout):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrHistoryUnsupported):
		return http.StatusNotImplemented
	default:
		// Includes model.ErrCredentialMissing.
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
