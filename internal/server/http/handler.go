package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Client-facing messages. They never say which rule failed.
const (
	msgRegistrationFailed = "Invalid username or password or email."
	msgAuthorizationFail  = "Wrong username or password."
	msgNotAuthenticated   = "Not authenticated"
	msgTokenExpired       = "Token has expired."
	msgInvalidToken       = "Invalid token."
	msgUserNotFound       = "User not found."
	msgInternal           = "internal error"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// maxFormMemory bounds the in-memory part of a multipart form.
const maxFormMemory = 1 << 20

// parseForm fills r.PostForm from a urlencoded or multipart/form-data body.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

func (s *HTTPServer) handleRegistration(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		s.writeError(w, http.StatusBadRequest, msgRegistrationFailed)
		return
	}

	token, err := s.auth.Register(r.Context(),
		r.PostForm.Get("username"), r.PostForm.Get("password"), r.PostForm.Get("email"))
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			s.writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		s.writeError(w, http.StatusBadRequest, msgRegistrationFailed)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

func (s *HTTPServer) handleAuthorization(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		s.writeError(w, http.StatusBadRequest, msgAuthorizationFail)
		return
	}

	token, err := s.auth.Authorize(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			s.writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		s.writeError(w, http.StatusBadRequest, msgAuthorizationFail)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

func (s *HTTPServer) handleUserData(w http.ResponseWriter, r *http.Request) {
	token, err := ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	profile, err := s.auth.CurrentUser(r.Context(), token)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, profile)
	case errors.Is(err, common.ErrTokenExpired):
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.writeError(w, http.StatusUnauthorized, msgTokenExpired)
	case errors.Is(err, common.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.writeError(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		s.writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) writeError(w http.ResponseWriter, code int, detail string) {
	s.writeJSON(w, code, errorResponse{Detail: detail})
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
