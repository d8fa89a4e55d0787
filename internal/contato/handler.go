package contato

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

// BuscadorCRM busca o detalhe completo do contato no CRM externo.
type BuscadorCRM interface {
	BuscarContato(ctx context.Context, homioID string) (map[string]any, error)
}

type detalheContatoResponse struct {
	Contato Contato        `json:"contato"`
	CRM     map[string]any `json:"crm,omitempty"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	CRM        BuscadorCRM
	Logger     *slog.Logger
}

func NewHandler(db *gorm.DB, crm BuscadorCRM, logger *slog.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		CRM:        crm,
		Logger:     logger,
	}
}

// BuscarPorID trata GET /contatos/{id}. O detalhe do CRM é enriquecimento:
// se o CRM estiver fora, devolve só o registro local.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.BuscarPorID(h.DB, uint(id), ident.AgencyID)
	if err != nil {
		http.Error(w, "contato não encontrado", http.StatusNotFound)
		return
	}

	resp := detalheContatoResponse{Contato: *c}
	if c.HomioID != "" && h.CRM != nil {
		detalhe, err := h.CRM.BuscarContato(r.Context(), c.HomioID)
		if err != nil {
			h.Logger.Warn("falha ao buscar contato no CRM",
				"contatoId", c.ID, "homioId", c.HomioID, "err", err)
		} else {
			resp.CRM = detalhe
		}
	}
	utils.ResponderJSON(w, http.StatusOK, resp)
}
