package http

import (
	"encoding/json"
	"net/http"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// SettingsHandler обслуживает настройки витрины: баннеры и контакты.
// Чтение публичное, запись — за аутентификацией.
type SettingsHandler struct {
	settingsUsecase usecase.SettingsUC
	logger          logger.Logger
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUC, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase, logger: logger}
}

// getBanners
//
//	@Summary	Промо-баннеры витрины
//	@Tags		settings
//	@Produce	json
//	@Success	200	{object}	domain.Banners
//	@Router		/promotional-banners [get]
func (h *SettingsHandler) getBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.settingsUsecase.GetBanners(r.Context())
	if err != nil {
		h.logger.Warnf("get banners: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, banners)
}

// saveBanners
//
//	@Summary	Обновление промо-баннеров
//	@Tags		settings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	domain.Banners
//	@Router		/admin/promotional-banners [put]
func (h *SettingsHandler) saveBanners(w http.ResponseWriter, r *http.Request) {
	var banners domain.Banners
	if err := json.NewDecoder(r.Body).Decode(&banners); err != nil {
		WriteError(w, e.Validation("body", "invalid json"))
		return
	}

	if err := h.settingsUsecase.SaveBanners(r.Context(), &banners); err != nil {
		h.logger.Warnf("save banners: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, banners)
}

// getContactInfo
//
//	@Summary	Контактная информация магазина
//	@Tags		settings
//	@Produce	json
//	@Success	200	{object}	domain.ContactInfo
//	@Router		/contact-info [get]
func (h *SettingsHandler) getContactInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.settingsUsecase.GetContactInfo(r.Context())
	if err != nil {
		h.logger.Warnf("get contact info: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, info)
}

// saveContactInfo
//
//	@Summary	Обновление контактной информации
//	@Tags		settings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	domain.ContactInfo
//	@Router		/admin/contact-info [put]
func (h *SettingsHandler) saveContactInfo(w http.ResponseWriter, r *http.Request) {
	var info domain.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		WriteError(w, e.Validation("body", "invalid json"))
		return
	}

	if err := h.settingsUsecase.SaveContactInfo(r.Context(), &info); err != nil {
		h.logger.Warnf("save contact info: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, info)
}
