package unidade

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/homio"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

type unidadeRequest struct {
	Numero     string  `json:"numero" validate:"required"`
	Nome       string  `json:"nome"`
	Torre      string  `json:"torre"`
	Andar      string  `json:"andar"`
	ValorBruto float64 `json:"valorBruto" validate:"gte=0"`
}

type statusUnidadeRequest struct {
	Status string `json:"status" validate:"required"`
}

type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Servico      *ServicoStatus
	Preferencias preferencias.Repository
	validate     *validator.Validate
}

func NewHandler(db *gorm.DB, servico *ServicoStatus) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Servico:      servico,
		Preferencias: preferencias.NewRepository(),
		validate:     validator.New(),
	}
}

func (h *Handler) permissoes(ident auth.Identidade) (preferencias.Permissoes, error) {
	prefs, err := h.Preferencias.BuscarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		return preferencias.Permissoes{}, err
	}
	return preferencias.ResolverPermissoes(prefs, ident.Papel), nil
}

// Criar trata POST /empreendimentos/{id}/unidades
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !perms.GerirEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	empID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req unidadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	u := Unidade{
		AgencyID:         ident.AgencyID,
		EmpreendimentoID: uint(empID),
		Numero:           req.Numero,
		Nome:             req.Nome,
		Torre:            req.Torre,
		Andar:            req.Andar,
		Status:           StatusDisponivel,
		ValorBruto:       req.ValorBruto,
	}
	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, u)
}

// ListarPorEmpreendimento trata GET /empreendimentos/{id}/unidades
func (h *Handler) ListarPorEmpreendimento(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !perms.VerEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	empID, _ := strconv.Atoi(mux.Vars(r)["id"])
	list, err := h.Repository.ListarPorEmpreendimento(h.DB, uint(empID), ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// ListarResumo trata GET /empreendimentos/{id}/unidades/resumo: a view com o
// valor atual calculado no banco, com status no vocabulário externo.
func (h *Handler) ListarResumo(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !perms.VerEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	empID, _ := strconv.Atoi(mux.Vars(r)["id"])
	list, err := h.Repository.ListarResumoPorEmpreendimento(h.DB, uint(empID), ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	saida := make([]UnidadeResumo, len(list))
	for i, item := range list {
		if externo, err := StatusParaExterno(item.Status); err == nil {
			item.Status = externo
		}
		saida[i] = item
	}
	utils.ResponderJSON(w, http.StatusOK, saida)
}

// BuscarPorID trata GET /unidades/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !perms.VerEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	u, err := h.Repository.BuscarPorID(h.DB, uint(id), ident.AgencyID)
	if err != nil {
		http.Error(w, "unidade não encontrada", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u)
}

// Atualizar trata PUT /unidades/{id} (dados cadastrais; status não passa aqui)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !perms.GerirEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	u, err := h.Repository.BuscarPorID(h.DB, uint(id), ident.AgencyID)
	if err != nil {
		http.Error(w, "unidade não encontrada", http.StatusNotFound)
		return
	}

	var req unidadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	u.Numero = req.Numero
	u.Nome = req.Nome
	u.Torre = req.Torre
	u.Andar = req.Andar
	u.ValorBruto = req.ValorBruto

	if err := h.Repository.Salvar(h.DB, u); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u)
}

// AtualizarStatus trata PATCH /unidades/{id}/status. Mesmo fora do fluxo de
// proposta, toda mudança de status passa pela confirmação externa.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !ident.EhAdmin() || !perms.GerirEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req statusUnidadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	// valida o vocabulário externo antes de qualquer acesso a banco
	interno, err := StatusParaInterno(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Servico.AtualizarStatusConfirmado(r.Context(), uint(id), ident.AgencyID, interno, nil); err != nil {
		var erroWebhook *homio.ErroWebhook
		switch {
		case errors.As(err, &erroWebhook):
			utils.ResponderErroWebhook(w, erroWebhook.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "unidade não encontrada", http.StatusNotFound)
		default:
			utils.ResponderErroStorage(w, err)
		}
		return
	}

	utils.ResponderJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

// Deletar trata DELETE /unidades/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	perms, err := h.permissoes(ident)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if !perms.GerirEmpreendimentos {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id), ident.AgencyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "unidade não encontrada", http.StatusNotFound)
			return
		}
		utils.ResponderErroStorage(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
