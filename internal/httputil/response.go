package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	JSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error", Message: msg})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	JSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request", Message: msg})
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	JSON(w, http.StatusNotFound, errorResponse{Error: "Not Found", Message: msg})
}

func Unauthorized(w http.ResponseWriter, msg string) {
	slog.Warn("unauthorized", "message", msg)
	JSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized", Message: msg})
}

// AdminLoginRequired is the uniform guard response. Missing, malformed and
// expired tokens all produce this same body.
func AdminLoginRequired(w http.ResponseWriter) {
	slog.Warn("unauthorized", "code", "ADMIN_LOGIN_REQUIRED")
	JSON(w, http.StatusUnauthorized, errorResponse{
		Error:   "Unauthorized",
		Code:    "ADMIN_LOGIN_REQUIRED",
		Message: "관리자 로그인이 필요합니다",
	})
}
