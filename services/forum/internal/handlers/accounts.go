package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/services/forum/internal/accounts"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type addedUserResponse struct {
	AddedUser accounts.AddedUser `json:"addedUser"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// decodeValid decodes and validates body; on failure it has already
// written the 400 response.
func decodeValid(w http.ResponseWriter, r *http.Request, body any) bool {
	if err := api.DecodeJSON(w, r, body); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return false
	}
	if err := validate.Struct(body); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			api.BadRequest(w, fieldMessage(fields[0]))
			return false
		}
		api.BadRequest(w, "invalid request body")
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " exceeds " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// PostUser handles POST /users
func PostUser(svc AccountService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeValid(w, r, &req) {
			return
		}
		added, err := svc.Register(r.Context(), req.Username, req.Password, req.Fullname)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusCreated, addedUserResponse{AddedUser: added})
	}
}

// PostAuthentication handles POST /authentications
func PostAuthentication(svc AccountService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeValid(w, r, &req) {
			return
		}
		tokens, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusCreated, tokens)
	}
}

// PutAuthentication handles PUT /authentications
func PutAuthentication(svc AccountService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeValid(w, r, &req) {
			return
		}
		access, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusOK, accessTokenResponse{AccessToken: access})
	}
}

// DeleteAuthentication handles DELETE /authentications
func DeleteAuthentication(svc AccountService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeValid(w, r, &req) {
			return
		}
		if err := svc.Logout(r.Context(), req.RefreshToken); err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusOK, nil)
	}
}
