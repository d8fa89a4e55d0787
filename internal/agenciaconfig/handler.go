package agenciaconfig

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/utils"
)

type atualizarConfigRequest struct {
	CamposOportunidade MapaCampos `json:"camposOportunidade"`
	CamposContato      MapaCampos `json:"camposContato"`
	TabelaURL          string     `json:"tabelaUrl" validate:"omitempty,url"`
}

type sincronizarRequest struct {
	Oportunidade []CampoCRM `json:"oportunidade" validate:"dive"`
	Contato      []CampoCRM `json:"contato" validate:"dive"`
}

type Handler struct {
	Repository *Repository
	validate   *validator.Validate
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repository: repo, validate: validator.New()}
}

// Buscar trata GET /agencia-config
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	cfg, err := h.Repository.BuscarPorAgencia(ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if cfg == nil {
		http.Error(w, "configuração não cadastrada", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, cfg)
}

// Atualizar trata PUT /agencia-config (somente admin)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	if !ident.EhAdmin() {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req atualizarConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.Repository.BuscarPorAgencia(ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if cfg == nil {
		cfg = &AgenciaConfig{AgencyID: ident.AgencyID}
	}
	cfg.CamposOportunidade = req.CamposOportunidade
	cfg.CamposContato = req.CamposContato
	cfg.TabelaURL = req.TabelaURL

	if err := h.Repository.Salvar(cfg); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, cfg)
}

// Sincronizar trata POST /agencia-config/sincronizar: recebe a listagem de
// custom fields do CRM e reconstrói os mapas pela tabela de aliases.
func (h *Handler) Sincronizar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	if !ident.EhAdmin() {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req sincronizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	cfg, err := h.Repository.BuscarPorAgencia(ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if cfg == nil {
		cfg = &AgenciaConfig{AgencyID: ident.AgencyID}
	}
	cfg.CamposOportunidade = MontarMapaOportunidade(req.Oportunidade)
	cfg.CamposContato = MontarMapaContato(req.Contato)

	if err := h.Repository.Salvar(cfg); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, cfg)
}
