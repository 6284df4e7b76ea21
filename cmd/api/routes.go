package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/sehyukim/minton-calendar/internal/auth"
	"github.com/sehyukim/minton-calendar/internal/config"
	"github.com/sehyukim/minton-calendar/internal/httputil"
	"github.com/sehyukim/minton-calendar/internal/middleware"
	"github.com/sehyukim/minton-calendar/internal/service"
	"github.com/sehyukim/minton-calendar/internal/store"
	"github.com/sehyukim/minton-calendar/internal/tournament"
)

func newRouter(cfg *config.Config, database *sqlx.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	authService := auth.NewService(cfg.AdminID, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenTTL)
	tournaments := service.NewTournamentService(store.NewTournamentStore(database), clockwork.NewRealClock())

	startedAt := time.Now()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]any{
			"status": "Server is ok",
			"uptime": time.Since(startedAt).Seconds(),
		})
	})

	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID       string `json:"id"`
			Password string `json:"password"`
		}
		if err := decodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		token, err := authService.Login(req.ID, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				httputil.Unauthorized(w, "아이디 또는 비밀번호가 올바르지 않습니다.")
				return
			}
			httputil.InternalServerError(w, "Failed to log in", err)
			return
		}

		httputil.JSON(w, http.StatusOK, map[string]string{"accessToken": token})
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			items, err := tournaments.ListAll(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list tournaments", err)
				return
			}
			httputil.JSON(w, http.StatusOK, items)
		})

		r.Get("/month", func(w http.ResponseWriter, r *http.Request) {
			year, err := strconv.Atoi(r.URL.Query().Get("year"))
			if err != nil {
				httputil.BadRequest(w, "year query parameter must be a number", err)
				return
			}
			month, err := strconv.Atoi(r.URL.Query().Get("month"))
			if err != nil {
				httputil.BadRequest(w, "month query parameter must be a number", err)
				return
			}

			limit := 0
			if raw := r.URL.Query().Get("limit"); raw != "" {
				limit, err = strconv.Atoi(raw)
				if err != nil {
					httputil.BadRequest(w, "limit query parameter must be a number", err)
					return
				}
			}

			page, err := tournaments.ListMonth(r.Context(), year, month, r.URL.Query().Get("cursor"), limit)
			if err != nil {
				writeServiceError(w, "Failed to list tournaments for month", err)
				return
			}
			httputil.JSON(w, http.StatusOK, page)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := parseID(r)
			if err != nil {
				httputil.BadRequest(w, "Invalid tournament ID", err)
				return
			}

			item, err := tournaments.GetByID(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to get tournament", err)
				return
			}
			// A missing tournament is a null body, not an error.
			httputil.JSON(w, http.StatusOK, item)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(authService))

			r.Post("/", func(w http.ResponseWriter, r *http.Request) {
				var req tournament.CreateRequest
				if err := decodeJSON(r, &req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}

				item, err := tournaments.Create(r.Context(), &req)
				if err != nil {
					writeServiceError(w, "Failed to create tournament", err)
					return
				}
				httputil.JSON(w, http.StatusCreated, item)
			})

			r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
				id, err := parseID(r)
				if err != nil {
					httputil.BadRequest(w, "Invalid tournament ID", err)
					return
				}

				var req tournament.UpdateRequest
				if err := decodeJSON(r, &req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}

				item, err := tournaments.Update(r.Context(), id, &req)
				if err != nil {
					writeServiceError(w, "Failed to update tournament", err)
					return
				}
				httputil.JSON(w, http.StatusOK, item)
			})

			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
				id, err := parseID(r)
				if err != nil {
					httputil.BadRequest(w, "Invalid tournament ID", err)
					return
				}

				item, err := tournaments.Delete(r.Context(), id)
				if err != nil {
					writeServiceError(w, "Failed to delete tournament", err)
					return
				}
				httputil.JSON(w, http.StatusOK, item)
			})
		})
	})

	return r
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeServiceError(w http.ResponseWriter, msg string, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httputil.BadRequest(w, verr.Msg, nil)
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		httputil.NotFound(w, "Tournament not found", err)
		return
	}
	httputil.InternalServerError(w, msg, err)
}
