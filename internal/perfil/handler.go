package perfil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Login string `json:"login" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type criarPerfilRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Telefone string `json:"telefone"`
	Foto     string `json:"foto"`
	Senha    string `json:"senha" validate:"required,min=8"`
	Papel    string `json:"papel" validate:"omitempty,oneof=admin corretor"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	validate   *validator.Validate
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		validate:   validator.New(),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.AgencyID, user.Papel)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	utils.ResponderJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Criar cadastra um novo perfil na agência do admin autenticado
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	if !ident.EhAdmin() {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req criarPerfilRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	papel := req.Papel
	if papel == "" {
		papel = auth.PapelCorretor
	}

	p := Perfil{
		AgencyID: ident.AgencyID,
		Nome:     req.Nome,
		Email:    req.Email,
		Telefone: req.Telefone,
		Foto:     req.Foto,
		Senha:    hash,
		Papel:    papel,
	}

	if err := h.Repository.Salvar(h.DB, &p); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}

	utils.ResponderJSON(w, http.StatusCreated, p)
}

// Listar retorna os perfis da agência do chamador
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	perfis, err := h.Repository.ListarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, perfis)
}

// BuscarPorID trata GET /perfis/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentidadeDe(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "perfil não encontrado", http.StatusNotFound)
		return
	}
	if p.AgencyID != ident.AgencyID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}
