package proposta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/homio"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePreferenciasRepo struct {
	prefs *preferencias.Preferencias
}

func (f *fakePreferenciasRepo) BuscarPorAgencia(_ *gorm.DB, _ string) (*preferencias.Preferencias, error) {
	return f.prefs, nil
}

func (f *fakePreferenciasRepo) Salvar(_ *gorm.DB, _ *preferencias.Preferencias) error { return nil }

func novoHandlerTeste(svc *Service) *Handler {
	return &Handler{
		Service:      svc,
		Preferencias: &fakePreferenciasRepo{},
		validate:     validator.New(),
	}
}

func requisicaoAutenticada(t *testing.T, metodo, alvo string, corpo any, ident auth.Identidade) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if corpo != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(corpo))
	}
	r := httptest.NewRequest(metodo, alvo, &buf)
	ctx := context.WithValue(r.Context(), auth.CtxUserID, ident.UserID)
	ctx = context.WithValue(ctx, auth.CtxAgencyID, ident.AgencyID)
	ctx = context.WithValue(ctx, auth.CtxPapel, ident.Papel)
	return r.WithContext(ctx)
}

func executarPatchStatus(t *testing.T, h *Handler, corpo any, ident auth.Identidade) *httptest.ResponseRecorder {
	t.Helper()
	r := requisicaoAutenticada(t, http.MethodPatch, "/propostas/10/status", corpo, ident)
	r = mux.SetURLVars(r, map[string]string{"id": "10"})
	w := httptest.NewRecorder()
	h.AtualizarStatus(w, r)
	return w
}

func TestPatchStatusRespondeStatusExterno(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})
	h := novoHandlerTeste(svc)

	w := executarPatchStatus(t, h, statusRequest{Status: "negada"}, identAdmin)
	require.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, uint(10), resp.ID)
	assert.Equal(t, "negada", resp.Status)
}

func TestPatchStatusSemAutenticacao(t *testing.T) {
	svc := novoServicoTeste(&fakePropostaRepo{}, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})
	h := novoHandlerTeste(svc)

	r := httptest.NewRequest(http.MethodPatch, "/propostas/10/status", bytes.NewBufferString(`{"status":"negada"}`))
	w := httptest.NewRecorder()
	h.AtualizarStatus(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatchStatusInvalidoResponde400(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})
	h := novoHandlerTeste(svc)

	w := executarPatchStatus(t, h, statusRequest{Status: "cancelada"}, identAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchStatusCorretorResponde403(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})
	h := novoHandlerTeste(svc)
	h.Preferencias = &fakePreferenciasRepo{prefs: &preferencias.Preferencias{
		CanManageProposals: preferencias.AdminEUsuario,
		CanViewProposals:   preferencias.AdminEUsuario,
	}}

	corretor := auth.Identidade{UserID: 2, AgencyID: "ag-1", Papel: auth.PapelCorretor}
	w := executarPatchStatus(t, h, statusRequest{Status: "aprovada"}, corretor)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPatchStatusPropostaInexistenteResponde404(t *testing.T) {
	svc := novoServicoTeste(&fakePropostaRepo{propostas: map[uint]*Proposta{}}, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})
	h := novoHandlerTeste(svc)

	w := executarPatchStatus(t, h, statusRequest{Status: "aprovada"}, identAdmin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchStatusFalhaDeWebhookResponde502ComForma(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	unidades := &fakeAtualizadorUnidade{
		err: &homio.ErroWebhook{Operacao: "status-unidade", Causa: errors.New("HTTP 500")},
	}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, unidades, &fakeCRM{}, &fakeConfig{})
	h := novoHandlerTeste(svc)

	w := executarPatchStatus(t, h, statusRequest{Status: "aprovada", AtualizarUnidade: true}, identAdmin)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var corpo map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&corpo))
	assert.Equal(t, "WEBHOOK_ERROR", corpo["error"])
	assert.Equal(t, true, corpo["webhookError"])
	assert.NotEmpty(t, corpo["webhookMessage"])
}

func TestListarTraduzStatusParaExterno(t *testing.T) {
	svc := novoServicoTeste(&fakePropostaRepo{}, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})
	svc.Repository = &fakeResumoRepo{resumo: []PropostaResumo{
		{ID: 1, Status: StatusAprovada},
		{ID: 2, Status: StatusEmAnalise},
	}}
	h := novoHandlerTeste(svc)

	r := requisicaoAutenticada(t, http.MethodGet, "/propostas", nil, identAdmin)
	w := httptest.NewRecorder()
	h.Listar(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var lista []PropostaResumo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lista))
	require.Len(t, lista, 2)
	assert.Equal(t, "aprovada", lista[0].Status)
	assert.Equal(t, "em_analise", lista[1].Status)
}

type fakeResumoRepo struct {
	fakePropostaRepo
	resumo []PropostaResumo
}

func (f *fakeResumoRepo) ListarResumo(_ *gorm.DB, _ string, _ *uint) ([]PropostaResumo, error) {
	return f.resumo, nil
}
