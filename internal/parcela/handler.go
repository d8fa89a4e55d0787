package parcela

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/utils"
	"gorm.io/gorm"
)

// ParcelaRequest também é usada pelo POST /propostas na criação em lote.
type ParcelaRequest struct {
	Condicao    string      `json:"condicao" validate:"required"`
	Valor       float64     `json:"valor" validate:"gte=0"`
	Quantidade  int         `json:"quantidade" validate:"gte=1"`
	ValorTotal  float64     `json:"valorTotal" validate:"gte=0"`
	DataInicial *time.Time  `json:"dataInicial"`
	Datas       []time.Time `json:"datas"`
}

// Montar converte a request em modelo, validando a condição.
func (req ParcelaRequest) Montar(agencyID string, propostaID uint) (*Parcela, error) {
	if err := ValidarCondicao(req.Condicao); err != nil {
		return nil, err
	}
	p := &Parcela{
		AgencyID:    agencyID,
		PropostaID:  propostaID,
		Condicao:    req.Condicao,
		Valor:       req.Valor,
		Quantidade:  req.Quantidade,
		ValorTotal:  req.ValorTotal,
		DataInicial: req.DataInicial,
	}
	// datas explícitas só têm significado para intermediarias
	if req.Condicao == CondicaoIntermediarias {
		for _, d := range req.Datas {
			p.Datas = append(p.Datas, ParcelaData{Data: d})
		}
	}
	return p, nil
}

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

func (h *Handler) permissoes(ident auth.Identidade) (preferencias.Permissoes, error) {
	prefs, err := h.Preferencias.BuscarPorAgencia(h.DB, ident.AgencyID)
	if err != nil {
		return preferencias.Permissoes{}, err
	}
	return preferencias.ResolverPermissoes(prefs, ident.Papel), nil
}

// Criar trata POST /propostas/{id}/parcelas
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

	propostaID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req ParcelaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	p, err := req.Montar(ident.AgencyID, uint(propostaID))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repository.Salvar(h.DB, p); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// Listar trata GET /propostas/{id}/parcelas
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

	propostaID, _ := strconv.Atoi(mux.Vars(r)["id"])
	parcelas, err := h.Repository.ListarPorProposta(h.DB, uint(propostaID))
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, parcelas)
}

// Deletar trata DELETE /parcelas/{id}
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
	if !perms.GerirPropostas {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id), ident.AgencyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "parcela não encontrada", http.StatusNotFound)
			return
		}
		utils.ResponderErroStorage(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
