package http

import (
	"encoding/json"
	"net/http"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// AuthHandler обслуживает вход и выход администратора.
type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

// login
//
//	@Summary		Вход администратора
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Учетные данные"
//	@Success		200		{object}	LoginResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/admin/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.Validation("body", "invalid json"))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warnf("login failed for %q: %s", req.Username, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, LoginResponse{Token: token})
}

// logout
//
//	@Summary		Выход администратора
//	@Description	Отзывает предъявленный токен до истечения его срока
//	@Tags			auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Failure		401	{object}	ErrorResponse
//	@Router			/admin/logout [post]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.authUsecase.Logout(r.Context(), token); err != nil {
		h.logger.Warnf("logout failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]bool{"success": true})
}
