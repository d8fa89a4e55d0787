package preferencias

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

type atualizarPreferenciasRequest struct {
	CanViewProposals   string `json:"canViewProposals" validate:"required,oneof=adminOnly adminAndUser"`
	CanManageProposals string `json:"canManageProposals" validate:"required,oneof=adminOnly adminAndUser"`
	CanViewBuildings   string `json:"canViewBuildings" validate:"required,oneof=adminOnly adminAndUser"`
	CanManageBuildings string `json:"canManageBuildings" validate:"required,oneof=adminOnly adminAndUser"`

	CanManageOnlyAssinedProposals bool `json:"canManageOnlyAssinedProposals"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	validate   *validator.Validate
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		validate:   validator.New(),
	}
}

// Buscar trata GET /preferencias
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	prefs, err := h.Repository.BuscarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if prefs == nil {
		http.Error(w, "preferências não cadastradas", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, prefs)
}

// Atualizar trata PUT /preferencias (somente admin)
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

	var req atualizarPreferenciasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	prefs, err := h.Repository.BuscarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if prefs == nil {
		prefs = &Preferencias{AgencyID: ident.AgencyID}
	}

	prefs.CanViewProposals = req.CanViewProposals
	prefs.CanManageProposals = req.CanManageProposals
	prefs.CanViewBuildings = req.CanViewBuildings
	prefs.CanManageBuildings = req.CanManageBuildings
	prefs.CanManageOnlyAssinedProposals = req.CanManageOnlyAssinedProposals

	if err := h.Repository.Salvar(h.DB, prefs); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, prefs)
}
