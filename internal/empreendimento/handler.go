package empreendimento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

type empreendimentoRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	UF       string `json:"uf" validate:"omitempty,len=2"`
}

// Handler encapsula DB e repositories
type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Preferencias preferencias.Repository
	validate     *validator.Validate
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Preferencias: preferencias.NewRepository(),
		validate:     validator.New(),
	}
}

// permissões são resolvidas a cada requisição, nunca cacheadas.
func (h *Handler) permissoes(ident auth.Identidade) (preferencias.Permissoes, error) {
	prefs, err := h.Preferencias.BuscarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		return preferencias.Permissoes{}, err
	}
	return preferencias.ResolverPermissoes(prefs, ident.Papel), nil
}

// Criar trata POST /empreendimentos
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

	var req empreendimentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	e := Empreendimento{
		AgencyID: ident.AgencyID,
		Nome:     req.Nome,
		Endereco: req.Endereco,
		Cidade:   req.Cidade,
		UF:       req.UF,
	}
	if err := h.Repository.Salvar(h.DB, &e); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, e)
}

// Listar trata GET /empreendimentos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Repository.ListarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// BuscarPorID trata GET /empreendimentos/{id}
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
	e, err := h.Repository.BuscarPorID(h.DB, uint(id), ident.AgencyID)
	if err != nil {
		http.Error(w, "empreendimento não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e)
}

// Atualizar trata PUT /empreendimentos/{id}
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
	e, err := h.Repository.BuscarPorID(h.DB, uint(id), ident.AgencyID)
	if err != nil {
		http.Error(w, "empreendimento não encontrado", http.StatusNotFound)
		return
	}

	var req empreendimentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	e.Nome = req.Nome
	e.Endereco = req.Endereco
	e.Cidade = req.Cidade
	e.UF = req.UF

	if err := h.Repository.Salvar(h.DB, e); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e)
}

// Deletar trata DELETE /empreendimentos/{id}
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
			http.Error(w, "empreendimento não encontrado", http.StatusNotFound)
			return
		}
		utils.ResponderErroStorage(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
