package product

import (
	"errors"
	"net/http"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the variant routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /products/{id}/variants", h.listVariants)
	mux.HandleFunc("POST /products/{id}/variants", h.addDefaultVariant)
	mux.HandleFunc("DELETE /products/{id}/variants", h.clearVariants)
	mux.HandleFunc("POST /products/{id}/variants/generate", h.generateVariants)
	mux.HandleFunc("PATCH /products/{id}/variants/{variantID}", h.updateVariant)
	mux.HandleFunc("DELETE /products/{id}/variants/{variantID}", h.deleteVariant)
}

func (h *Handler) generateVariants(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var input GenerateInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.GenerateVariants(r.Context(), productID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !res.OK {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) listVariants(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	variants, err := h.svc.ListVariants(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"variants": variants})
}

func (h *Handler) addDefaultVariant(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	v, err := h.svc.AddDefaultVariant(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) updateVariant(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := pathID(w, r, "variantID")
	if !ok {
		return
	}

	var input UpdateVariantInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.svc.UpdateVariant(r.Context(), productID, variantID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := pathID(w, r, "variantID")
	if !ok {
		return
	}

	if err := h.svc.DeleteVariant(r.Context(), productID, variantID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearVariants(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	n, err := h.svc.ClearVariants(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(r.PathValue(name))
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrVariantNotFound),
		errors.Is(err, catalog.ErrBrandNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateSKU),
		errors.Is(err, ErrVariantConflict):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNoFieldsToUpdate):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error("unhandled error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
