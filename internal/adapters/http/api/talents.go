package api

import (
	"net/http"

	"github.com/okian/gobu/internal/domain/flags"
	"github.com/okian/gobu/internal/domain/types"
)

// TalentsHandler serves talent lookups and priority-range searches.
type TalentsHandler struct {
	deps Dependencies
}

// NewTalentsHandler creates a new talents handler.
func NewTalentsHandler(deps Dependencies) *TalentsHandler {
	return &TalentsHandler{deps: deps}
}

// HandleSearch handles GET /talents?above=x&below=y&rarity=r&format=abs.
// Between takes one comma-separated pair.
func (h *TalentsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	bag, err := flags.FromValues(flags.TalentSearch, r.URL.Query())
	if err != nil {
		writeFailure(w, err)
		return
	}
	res, key, err := h.deps.SearchTalents(r.Context(), bag)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.TalentSearchOf(res, key))
}

// HandleGet handles GET /talents/{name}.
func (h *TalentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.deps.Talent(r.Context(), r.PathValue("name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.TalentOf(t))
}
