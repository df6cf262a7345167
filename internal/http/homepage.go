package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-sections/internal/homepage"
)

type homepageSectionRequest struct {
	Identifier       *string `json:"identifier"`
	Title            *string `json:"title"`
	Subtitle         *string `json:"subtitle"`
	Description      *string `json:"description"`
	BackgroundColor  *string `json:"background_color"`
	TextColor        *string `json:"text_color"`
	BackgroundImage  *string `json:"background_image"`
	Cards            []any   `json:"cards"`
	Active           *bool   `json:"active"`
	ExpectedRevision *int64  `json:"expected_revision"`
}

type cardsRequest struct {
	Cards            []any  `json:"cards"`
	ExpectedRevision *int64 `json:"expected_revision"`
}

func (api *AdminAPI) registerHomepageRoutes(mux *http.ServeMux, base string) {
	collection := joinPath(base, "sites/{site}/homepage-sections")
	item := joinPath(collection, "{id}")

	api.handle(mux, "GET "+collection, api.handleHomepageList)
	api.handle(mux, "POST "+collection, api.handleHomepageCreate)
	api.handle(mux, "PUT "+joinPath(collection, "order"), api.handleHomepageReorder)
	api.handle(mux, "GET "+item, api.handleHomepageGet)
	api.handle(mux, "PATCH "+item, api.handleHomepageUpdate)
	api.handle(mux, "DELETE "+item, api.handleHomepageDelete)
	api.handle(mux, "GET "+joinPath(item, "cards"), api.handleHomepageCards)
	api.handle(mux, "PUT "+joinPath(item, "cards"), api.handleHomepageReplaceCards)
	api.handle(mux, "POST "+joinPath(item, "toggle"), api.handleHomepageToggle)
}

func (api *AdminAPI) handleHomepageList(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	site := r.PathValue("site")
	if identifier := strings.TrimSpace(r.URL.Query().Get("identifier")); identifier != "" {
		section, err := api.homepage.GetByIdentifier(r.Context(), site, identifier)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, section)
		return
	}
	sections, err := api.homepage.List(r.Context(), site)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (api *AdminAPI) handleHomepageCreate(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	var req homepageSectionRequest
	if !readBody(w, r, &req, false) {
		return
	}
	input := homepage.CreateInput{
		Site:            r.PathValue("site"),
		Subtitle:        req.Subtitle,
		Description:     req.Description,
		BackgroundImage: req.BackgroundImage,
		Cards:           req.Cards,
		Active:          req.Active,
	}
	if req.Identifier != nil {
		input.Identifier = *req.Identifier
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.BackgroundColor != nil {
		input.BackgroundColor = *req.BackgroundColor
	}
	if req.TextColor != nil {
		input.TextColor = *req.TextColor
	}
	section, err := api.homepage.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (api *AdminAPI) handleHomepageGet(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	section, err := api.homepage.Get(r.Context(), r.PathValue("site"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *AdminAPI) handleHomepageUpdate(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req homepageSectionRequest
	if !readBody(w, r, &req, false) {
		return
	}
	if req.Identifier != nil || req.Cards != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "identifier is immutable and cards are replaced through the cards endpoint",
		})
		return
	}
	section, err := api.homepage.Update(r.Context(), homepage.UpdateInput{
		Site:             r.PathValue("site"),
		ID:               id,
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		Description:      req.Description,
		BackgroundColor:  req.BackgroundColor,
		TextColor:        req.TextColor,
		BackgroundImage:  req.BackgroundImage,
		Active:           req.Active,
		ExpectedRevision: req.ExpectedRevision,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *AdminAPI) handleHomepageDelete(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := api.homepage.Delete(r.Context(), r.PathValue("site"), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleHomepageCards(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	cards, err := api.homepage.ListCards(r.Context(), r.PathValue("site"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (api *AdminAPI) handleHomepageReplaceCards(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req cardsRequest
	if !readBody(w, r, &req, false) {
		return
	}
	section, err := api.homepage.ReplaceCards(r.Context(), homepage.ReplaceCardsInput{
		Site:             r.PathValue("site"),
		ID:               id,
		Cards:            req.Cards,
		ExpectedRevision: req.ExpectedRevision,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *AdminAPI) handleHomepageReorder(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	var req orderPayload
	if !readBody(w, r, &req, false) {
		return
	}
	sections, err := api.homepage.Reorder(r.Context(), r.PathValue("site"), req.Order)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (api *AdminAPI) handleHomepageToggle(w http.ResponseWriter, r *http.Request) {
	if api.homepage == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	section, err := api.homepage.ToggleActive(r.Context(), r.PathValue("site"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}
