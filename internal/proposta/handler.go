package proposta

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/homio"
	"github.com/primehaus/backoffice/internal/parcela"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

type contatoRequest struct {
	HomioID string `json:"homioId" validate:"required"`
	Nome    string `json:"nome" validate:"required"`
}

type propostaRequest struct {
	UnidadeID         uint                     `json:"unidadeId" validate:"required"`
	OpportunityID     string                   `json:"opportunityId"`
	Responsavel       string                   `json:"responsavel"`
	Observacoes       string                   `json:"observacoes"`
	ReservadoAte      *time.Time               `json:"reservadoAte"`
	ContatoPrincipal  contatoRequest           `json:"contatoPrincipal" validate:"required"`
	ContatoSecundario *contatoRequest          `json:"contatoSecundario"`
	Parcelas          []parcela.ParcelaRequest `json:"parcelas" validate:"dive"`
}

type statusRequest struct {
	Status           string     `json:"status" validate:"required"`
	AtualizarUnidade bool       `json:"atualizarUnidade"`
	ReservadoAte     *time.Time `json:"reservadoAte"`
}

type statusResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

// propostaDetalhe junta a proposta com as parcelas; o status sai no
// vocabulário externo.
type propostaDetalhe struct {
	Proposta
	Status   string            `json:"status"`
	Parcelas []parcela.Parcela `json:"parcelas"`
}

type Handler struct {
	DB           *gorm.DB
	Service      *Service
	Preferencias preferencias.Repository
	validate     *validator.Validate
}

func NewHandler(db *gorm.DB, service *Service) *Handler {
	return &Handler{
		DB:           db,
		Service:      service,
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

// Criar trata POST /propostas
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
	if !perms.GerirPropostas {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req propostaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	cmd := ComandoCriar{
		UnidadeID:     req.UnidadeID,
		OpportunityID: req.OpportunityID,
		Responsavel:   req.Responsavel,
		Observacoes:   req.Observacoes,
		ReservadoAte:  req.ReservadoAte,
		ContatoPrincipal: ContatoInfo{
			HomioID: req.ContatoPrincipal.HomioID,
			Nome:    req.ContatoPrincipal.Nome,
		},
		Parcelas: req.Parcelas,
	}
	if req.ContatoSecundario != nil {
		cmd.ContatoSecundario = &ContatoInfo{
			HomioID: req.ContatoSecundario.HomioID,
			Nome:    req.ContatoSecundario.Nome,
		}
	}

	p, err := h.Service.Criar(r.Context(), ident, cmd)
	if err != nil {
		if errors.Is(err, parcela.ErrCondicaoInvalida) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// Listar trata GET /propostas
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
	if !perms.VerPropostas {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Service.ListarResumo(ident, perms)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	// a view armazena o código interno; a API fala o vocabulário externo
	saida := make([]PropostaResumo, len(list))
	for i, item := range list {
		if externo, err := StatusParaExterno(item.Status); err == nil {
			item.Status = externo
		}
		saida[i] = item
	}
	utils.ResponderJSON(w, http.StatusOK, saida)
}

// BuscarPorID trata GET /propostas/{id}
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
	if !perms.VerPropostas {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Service.Repository.BuscarPorID(h.DB, uint(id), ident.AgencyID)
	if err != nil {
		http.Error(w, "proposta não encontrada", http.StatusNotFound)
		return
	}
	if perms.SomenteProprias && p.CriadoPor != ident.UserID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	parcelas, err := h.Service.Parcelas.ListarPorProposta(h.DB, p.ID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}

	det := propostaDetalhe{Proposta: *p, Status: p.Status, Parcelas: parcelas}
	if externo, err := StatusParaExterno(p.Status); err == nil {
		det.Status = externo
	}
	utils.ResponderJSON(w, http.StatusOK, det)
}

// AtualizarStatus trata PATCH /propostas/{id}/status
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

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	cmd := ComandoStatus{
		PropostaID:       uint(id),
		NovoStatus:       req.Status,
		AtualizarUnidade: req.AtualizarUnidade,
		ReservadoAte:     req.ReservadoAte,
	}

	if err := h.Service.MudarStatus(r.Context(), ident, perms, cmd); err != nil {
		var erroWebhook *homio.ErroWebhook
		switch {
		case errors.Is(err, ErrStatusInvalido), errors.Is(err, ErrReservaSemData):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrSemPermissao):
			http.Error(w, "acesso negado", http.StatusForbidden)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "proposta não encontrada", http.StatusNotFound)
		case errors.As(err, &erroWebhook):
			utils.ResponderErroWebhook(w, erroWebhook.Error())
		default:
			utils.ResponderErroStorage(w, err)
		}
		return
	}

	utils.ResponderJSON(w, http.StatusOK, statusResponse{ID: uint(id), Status: req.Status})
}

// Deletar trata DELETE /propostas/{id}
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

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Service.Deletar(r.Context(), ident, perms, uint(id)); err != nil {
		switch {
		case errors.Is(err, ErrSemPermissao):
			http.Error(w, "acesso negado", http.StatusForbidden)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "proposta não encontrada", http.StatusNotFound)
		default:
			utils.ResponderErroStorage(w, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
