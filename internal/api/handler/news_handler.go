package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newsportal/internal/api/middleware"
	"newsportal/internal/app/service"
	"newsportal/internal/common"
	"newsportal/internal/platform/storage"

	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 10 << 20 // 10 MiB

type NewsHandler struct {
	newsService  *service.NewsService
	statsService *service.StatsService
	images       storage.ImageStore
	latestLimit  int
}

func NewNewsHandler(newsService *service.NewsService, statsService *service.StatsService, images storage.ImageStore, latestLimit int) *NewsHandler {
	return &NewsHandler{
		newsService:  newsService,
		statsService: statsService,
		images:       images,
		latestLimit:  latestLimit,
	}
}

func (h *NewsHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Get("/all-news", h.listAll)
	r.Get("/news/{id}", h.getByID)
	r.Get("/news/category/{category}", h.listByCategory)
	r.Get("/latest-news", h.listLatest)

	r.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Post("/create-news", h.create)
		protected.Get("/my-news", h.listMine)
		protected.Get("/my-dashboard-stats", h.myStats)
		protected.Put("/my-news/{id}", h.update)
		protected.Delete("/my-news/{id}", h.delete)
	})
}

// formPayload reads the request either as multipart form data with a JSON
// "data" field plus an optional "image" file, or as a plain JSON body. A
// freshly stored image reference is returned when a file was uploaded.
// Malformed requests come back as ErrBadRequest; a store failure while
// persisting the upload is ErrInternalServer.
func (h *NewsHandler) formPayload(r *http.Request) ([]byte, *string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", err.Error(), common.ErrBadRequest)
		}
		return payload, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err.Error(), common.ErrBadRequest)
	}
	payload := []byte(r.FormValue("data"))

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return payload, nil, nil
		}
		return nil, nil, fmt.Errorf("%s: %w", err.Error(), common.ErrBadRequest)
	}
	defer file.Close()

	ref, err := h.images.Save(header.Filename, file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store image: %w", common.ErrInternalServer)
	}
	return payload, &ref, nil
}

// decodeStrict rejects unknown fields so loose client shapes never reach
// the service layer.
func decodeStrict(payload []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *NewsHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	payload, imageRef, err := h.formPayload(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	var req service.CreateNewsRequest
	if err := decodeStrict(payload, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	news, err := h.newsService.Create(r.Context(), userID, req, imageRef)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, "News created successfully", news)
}

func (h *NewsHandler) listAll(w http.ResponseWriter, r *http.Request) {
	news, err := h.newsService.ListAll(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithList(w, http.StatusOK, "News fetched successfully", len(news), news)
}

func (h *NewsHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	news, err := h.newsService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "News not found")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "News fetched successfully", news)
}

func (h *NewsHandler) listByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	news, err := h.newsService.ListByCategory(r.Context(), category)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithList(w, http.StatusOK, "News in category '"+category+"' fetched successfully", len(news), news)
}

func (h *NewsHandler) listLatest(w http.ResponseWriter, r *http.Request) {
	news, err := h.newsService.ListLatest(r.Context(), h.latestLimit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithList(w, http.StatusOK, "Latest news fetched successfully", len(news), news)
}

func (h *NewsHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	news, err := h.newsService.ListMine(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithList(w, http.StatusOK, "Your news fetched successfully", len(news), news)
}

func (h *NewsHandler) myStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	stats, err := h.statsService.MyStats(r.Context(), userID, time.Now())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "Dashboard stats fetched successfully", stats)
}

func (h *NewsHandler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	id := chi.URLParam(r, "id")

	payload, imageRef, err := h.formPayload(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	var req service.UpdateNewsRequest
	if err := decodeStrict(payload, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	news, err := h.newsService.Update(r.Context(), userID, id, req, imageRef)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "News updated successfully", news)
}

func (h *NewsHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.newsService.Delete(r.Context(), userID, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "News deleted successfully", nil)
}
