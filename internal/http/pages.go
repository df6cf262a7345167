package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-sections/internal/pages"
)

type pageRequest struct {
	Slug             *string `json:"slug"`
	Title            *string `json:"title"`
	Active           *bool   `json:"active"`
	ExpectedRevision *int64  `json:"expected_revision"`
	pages.PageMeta
}

type sectionRequest struct {
	Type             string         `json:"type"`
	Fields           map[string]any `json:"fields"`
	Active           *bool          `json:"active"`
	ExpectedRevision *int64         `json:"expected_revision"`
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	collection := joinPath(base, "sites/{site}/pages")
	item := joinPath(collection, "{id}")

	api.handle(mux, "GET "+collection, api.handlePageList)
	api.handle(mux, "POST "+collection, api.handlePageCreate)
	api.handle(mux, "GET "+item, api.handlePageGet)
	api.handle(mux, "PATCH "+item, api.handlePageUpdate)
	api.handle(mux, "DELETE "+item, api.handlePageDelete)
	api.handle(mux, "POST "+joinPath(item, "toggle"), api.handlePageToggle)
}

func (api *AdminAPI) registerSectionRoutes(mux *http.ServeMux, base string) {
	collection := joinPath(base, "sites/{site}/pages/{id}/sections")
	item := joinPath(collection, "{sectionID}")

	api.handle(mux, "GET "+collection, api.handleSectionList)
	api.handle(mux, "POST "+collection, api.handleSectionCreate)
	api.handle(mux, "PUT "+joinPath(collection, "order"), api.handleSectionReorder)
	api.handle(mux, "GET "+item, api.handleSectionGet)
	api.handle(mux, "PATCH "+item, api.handleSectionUpdate)
	api.handle(mux, "DELETE "+item, api.handleSectionDelete)
	api.handle(mux, "POST "+joinPath(item, "toggle"), api.handleSectionToggle)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	site := r.PathValue("site")
	if slugValue := strings.TrimSpace(r.URL.Query().Get("slug")); slugValue != "" {
		page, err := api.pages.GetPageBySlug(r.Context(), site, slugValue)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
		return
	}
	records, err := api.pages.ListPages(r.Context(), site)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	var req pageRequest
	if !readBody(w, r, &req, false) {
		return
	}
	input := pages.CreatePageInput{
		Site:   r.PathValue("site"),
		Meta:   req.PageMeta,
		Active: req.Active,
	}
	if req.Slug != nil {
		input.Slug = *req.Slug
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	page, err := api.pages.CreatePage(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	page, err := api.pages.GetPage(r.Context(), r.PathValue("site"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req pageRequest
	if !readBody(w, r, &req, false) {
		return
	}
	if req.Active != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "use the toggle endpoint to change active"})
		return
	}
	page, err := api.pages.UpdatePage(r.Context(), pages.UpdatePageInput{
		Site:             r.PathValue("site"),
		ID:               id,
		Slug:             req.Slug,
		Title:            req.Title,
		Meta:             req.PageMeta,
		ExpectedRevision: req.ExpectedRevision,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := api.pages.DeletePage(r.Context(), r.PathValue("site"), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handlePageToggle(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	page, err := api.pages.TogglePageActive(r.Context(), r.PathValue("site"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handleSectionList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sections, err := api.pages.ListSections(r.Context(), r.PathValue("site"), pageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (api *AdminAPI) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req sectionRequest
	if !readBody(w, r, &req, false) {
		return
	}
	section, err := api.pages.AddSection(r.Context(), pages.AddSectionInput{
		Site:   r.PathValue("site"),
		PageID: pageID,
		Type:   req.Type,
		Fields: req.Fields,
		Active: req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (api *AdminAPI) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := pathUUID(w, r, "sectionID")
	if !ok {
		return
	}
	section, err := api.pages.GetSection(r.Context(), r.PathValue("site"), pageID, sectionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *AdminAPI) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := pathUUID(w, r, "sectionID")
	if !ok {
		return
	}
	var req sectionRequest
	if !readBody(w, r, &req, false) {
		return
	}
	if req.Type != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "section type cannot change"})
		return
	}
	section, err := api.pages.UpdateSection(r.Context(), pages.UpdateSectionInput{
		Site:             r.PathValue("site"),
		PageID:           pageID,
		SectionID:        sectionID,
		Fields:           req.Fields,
		Active:           req.Active,
		ExpectedRevision: req.ExpectedRevision,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *AdminAPI) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := pathUUID(w, r, "sectionID")
	if !ok {
		return
	}
	if err := api.pages.DeleteSection(r.Context(), r.PathValue("site"), pageID, sectionID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleSectionReorder(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req orderPayload
	if !readBody(w, r, &req, false) {
		return
	}
	sections, err := api.pages.ReorderSections(r.Context(), r.PathValue("site"), pageID, req.Order)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (api *AdminAPI) handleSectionToggle(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	pageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := pathUUID(w, r, "sectionID")
	if !ok {
		return
	}
	section, err := api.pages.ToggleSectionActive(r.Context(), r.PathValue("site"), pageID, sectionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}
