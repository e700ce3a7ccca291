package api

import (
	"net/http"
	"strings"

	"github.com/okian/gobu/internal/domain/flags"
	"github.com/okian/gobu/internal/domain/types"
)

// PetsHandler serves pet lookups, searches and breeding.
type PetsHandler struct {
	deps Dependencies
}

// NewPetsHandler creates a new pets handler.
func NewPetsHandler(deps Dependencies) *PetsHandler {
	return &PetsHandler{deps: deps}
}

// HandleSearch handles GET /pets?q=name&flag=value. Every pet search flag
// is accepted under its name or an alias; repeat keys for variadic flags.
func (h *PetsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	bag, err := flags.FromValues(flags.PetSearch, values)
	if err != nil {
		writeFailure(w, err)
		return
	}
	pets, err := h.deps.SearchPets(r.Context(), values.Get("q"), bag)
	if err != nil {
		writeFailure(w, err)
		return
	}
	out := make([]types.Pet, len(pets))
	for i, p := range pets {
		out[i] = types.PetOf(p, h.deps.IsHybrid(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /pets/{name}.
func (h *PetsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	pet, err := h.deps.Pet(r.Context(), r.PathValue("name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.PetOf(pet, h.deps.IsHybrid(pet)))
}

// HandleHatch handles GET /hatch?pets=a,b.
func (h *PetsHandler) HandleHatch(w http.ResponseWriter, r *http.Request) {
	list := strings.TrimSpace(r.URL.Query().Get("pets"))
	if list == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	res, err := h.deps.Hatch(r.Context(), list)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.HatchOf(res))
}

// HandleHybrids handles GET /hybrids/{name}.
func (h *PetsHandler) HandleHybrids(w http.ResponseWriter, r *http.Request) {
	pet, pairs, err := h.deps.Hybrids(r.Context(), r.PathValue("name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.HybridsOf(pet, pairs))
}
