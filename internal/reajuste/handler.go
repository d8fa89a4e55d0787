package reajuste

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

type reajusteRequest struct {
	Janeiro   float64 `json:"janeiro" validate:"gte=-1"`
	Fevereiro float64 `json:"fevereiro" validate:"gte=-1"`
	Marco     float64 `json:"marco" validate:"gte=-1"`
	Abril     float64 `json:"abril" validate:"gte=-1"`
	Maio      float64 `json:"maio" validate:"gte=-1"`
	Junho     float64 `json:"junho" validate:"gte=-1"`
	Julho     float64 `json:"julho" validate:"gte=-1"`
	Agosto    float64 `json:"agosto" validate:"gte=-1"`
	Setembro  float64 `json:"setembro" validate:"gte=-1"`
	Outubro   float64 `json:"outubro" validate:"gte=-1"`
	Novembro  float64 `json:"novembro" validate:"gte=-1"`
	Dezembro  float64 `json:"dezembro" validate:"gte=-1"`
}

type reajusteResponse struct {
	Registro          ReajusteMensal `json:"registro"`
	TaxaAcumulada     float64        `json:"taxaAcumulada"`
	PercentualExibido string         `json:"percentualExibido"`
}

type Handler struct {
	DB           *gorm.DB
	Repository   *Repository
	Preferencias preferencias.Repository
	validate     *validator.Validate
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(db),
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

// Upsert trata PUT /unidades/{id}/reajustes/{ano}: grava as taxas do ano e
// recomputa o acumulado da unidade.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
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

	vars := mux.Vars(r)
	unidadeID, _ := strconv.Atoi(vars["id"])
	ano, err := strconv.Atoi(vars["ano"])
	if err != nil || ano < 1900 || ano > 2200 {
		http.Error(w, "ano inválido", http.StatusBadRequest)
		return
	}

	var req reajusteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	reg, err := h.Repository.BuscarPorUnidadeEAno(uint(unidadeID), ano, ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	if reg == nil {
		reg = &ReajusteMensal{AgencyID: ident.AgencyID, UnidadeID: uint(unidadeID), Ano: ano}
	}

	reg.Janeiro, reg.Fevereiro, reg.Marco = req.Janeiro, req.Fevereiro, req.Marco
	reg.Abril, reg.Maio, reg.Junho = req.Abril, req.Maio, req.Junho
	reg.Julho, reg.Agosto, reg.Setembro = req.Julho, req.Agosto, req.Setembro
	reg.Outubro, reg.Novembro, reg.Dezembro = req.Outubro, req.Novembro, req.Dezembro

	if err := h.Repository.Salvar(reg); err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}

	todos, err := h.Repository.ListarPorUnidade(uint(unidadeID), ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	taxa := CalcularAcumulado(todos)

	if err := h.Repository.AtualizarTaxaUnidade(uint(unidadeID), ident.AgencyID, taxa); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "unidade não encontrada", http.StatusNotFound)
			return
		}
		utils.ResponderErroStorage(w, err)
		return
	}

	utils.ResponderJSON(w, http.StatusOK, reajusteResponse{
		Registro:          *reg,
		TaxaAcumulada:     taxa,
		PercentualExibido: FormatarPercentual(taxa),
	})
}

// Listar trata GET /unidades/{id}/reajustes
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

	unidadeID, _ := strconv.Atoi(mux.Vars(r)["id"])
	regs, err := h.Repository.ListarPorUnidade(uint(unidadeID), ident.AgencyID)
	if err != nil {
		utils.ResponderErroStorage(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, regs)
}
