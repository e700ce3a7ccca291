package api

import (
	"net/http"
	"strconv"

	"github.com/okian/gobu/internal/domain/failure"
)

const maxSuggestLimit = 50

// SuggestHandler completes pet and talent names.
type SuggestHandler struct {
	deps Dependencies
}

// NewSuggestHandler creates a new suggest handler.
func NewSuggestHandler(deps Dependencies) *SuggestHandler {
	return &SuggestHandler{deps: deps}
}

// HandleSuggest handles GET /suggest?kind=pet|talent&prefix=p&limit=n.
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entity := failure.EntityPet
	switch q.Get("kind") {
	case "", "pet":
	case "talent":
		entity = failure.EntityTalent
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxSuggestLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
			return
		}
		limit = n
	}

	out, err := h.deps.Suggest(r.Context(), entity, q.Get("prefix"), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
