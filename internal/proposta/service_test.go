package proposta

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/primehaus/backoffice/internal/agenciaconfig"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/contato"
	"github.com/primehaus/backoffice/internal/homio"
	"github.com/primehaus/backoffice/internal/parcela"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/unidade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePropostaRepo struct {
	propostas map[uint]*Proposta
	updates   map[string]interface{}
	detalhe   *DetalheSync
	salvas    []*Proposta
	deletadas []uint
}

func (f *fakePropostaRepo) Salvar(_ *gorm.DB, p *Proposta) error {
	if p.ID == 0 {
		p.ID = uint(len(f.salvas) + 100)
	}
	f.salvas = append(f.salvas, p)
	if f.propostas == nil {
		f.propostas = map[uint]*Proposta{}
	}
	f.propostas[p.ID] = p
	return nil
}

func (f *fakePropostaRepo) BuscarPorID(_ *gorm.DB, id uint, agencyID string) (*Proposta, error) {
	p, ok := f.propostas[id]
	if !ok || p.AgencyID != agencyID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePropostaRepo) AtualizarStatus(_ *gorm.DB, id uint, agencyID string, campos map[string]interface{}) (int64, error) {
	p, ok := f.propostas[id]
	if !ok || p.AgencyID != agencyID {
		return 0, nil
	}
	f.updates = campos
	if status, ok := campos["status"].(string); ok {
		p.Status = status
	}
	return 1, nil
}

func (f *fakePropostaRepo) ListarResumo(_ *gorm.DB, _ string, _ *uint) ([]PropostaResumo, error) {
	return nil, nil
}

func (f *fakePropostaRepo) BuscarDetalheSync(_ *gorm.DB, _ uint, _ string) (*DetalheSync, error) {
	return f.detalhe, nil
}

func (f *fakePropostaRepo) Deletar(_ *gorm.DB, id uint) error {
	f.deletadas = append(f.deletadas, id)
	delete(f.propostas, id)
	return nil
}

type fakeParcelaRepo struct {
	porProposta map[uint][]parcela.Parcela
	criadas     []*parcela.Parcela
	limpas      []uint
}

func (f *fakeParcelaRepo) Salvar(_ *gorm.DB, _ *parcela.Parcela) error { return nil }

func (f *fakeParcelaRepo) CriarEmLote(_ *gorm.DB, parcelas []*parcela.Parcela) error {
	f.criadas = append(f.criadas, parcelas...)
	return nil
}

func (f *fakeParcelaRepo) ListarPorProposta(_ *gorm.DB, propostaID uint) ([]parcela.Parcela, error) {
	return f.porProposta[propostaID], nil
}

func (f *fakeParcelaRepo) BuscarPorID(_ *gorm.DB, _ uint, _ string) (*parcela.Parcela, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeParcelaRepo) Deletar(_ *gorm.DB, _ uint, _ string) error { return nil }

func (f *fakeParcelaRepo) DeletarPorProposta(_ *gorm.DB, propostaID uint) error {
	f.limpas = append(f.limpas, propostaID)
	return nil
}

type fakeContatoRepo struct {
	porHomioID map[string]*contato.Contato
	porID      map[uint]*contato.Contato
	refs       map[uint]int64
	salvos     []*contato.Contato
	deletados  []uint
}

func (f *fakeContatoRepo) Salvar(_ *gorm.DB, c *contato.Contato) error {
	if c.ID == 0 {
		c.ID = uint(len(f.salvos) + 200)
	}
	f.salvos = append(f.salvos, c)
	if f.porHomioID == nil {
		f.porHomioID = map[string]*contato.Contato{}
	}
	f.porHomioID[c.HomioID] = c
	return nil
}

func (f *fakeContatoRepo) BuscarPorID(_ *gorm.DB, id uint, _ string) (*contato.Contato, error) {
	c, ok := f.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeContatoRepo) BuscarPorHomioID(_ *gorm.DB, homioID, _ string) (*contato.Contato, error) {
	return f.porHomioID[homioID], nil
}

func (f *fakeContatoRepo) ContarReferencias(_ *gorm.DB, contatoID uint) (int64, error) {
	return f.refs[contatoID], nil
}

func (f *fakeContatoRepo) Deletar(_ *gorm.DB, id uint) error {
	f.deletados = append(f.deletados, id)
	return nil
}

type chamadaUnidade struct {
	UnidadeID    uint
	Status       string
	ReservadoAte *time.Time
}

type fakeAtualizadorUnidade struct {
	chamadas []chamadaUnidade
	err      error
}

func (f *fakeAtualizadorUnidade) AtualizarStatusConfirmado(_ context.Context, id uint, _, statusInterno string, reservadoAte *time.Time) error {
	f.chamadas = append(f.chamadas, chamadaUnidade{UnidadeID: id, Status: statusInterno, ReservadoAte: reservadoAte})
	return f.err
}

type fakeCRM struct {
	opportunityID string
	campos        []homio.CampoValor
	financeiro    *homio.PayloadFinanceiro
	errCampos     error
	errFinanceiro error
}

func (f *fakeCRM) AtualizarCamposOportunidade(_ context.Context, opportunityID string, campos []homio.CampoValor) error {
	f.opportunityID = opportunityID
	f.campos = campos
	return f.errCampos
}

func (f *fakeCRM) EnviarFinanceiro(_ context.Context, payload homio.PayloadFinanceiro) error {
	f.financeiro = &payload
	return f.errFinanceiro
}

type fakeConfig struct {
	cfg *agenciaconfig.AgenciaConfig
}

func (f *fakeConfig) BuscarPorAgencia(_ string) (*agenciaconfig.AgenciaConfig, error) {
	return f.cfg, nil
}

func logDescartado() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func novoServicoTeste(repo *fakePropostaRepo, parcelas *fakeParcelaRepo, contatos *fakeContatoRepo, unidades *fakeAtualizadorUnidade, crm *fakeCRM, cfg *fakeConfig) *Service {
	return &Service{
		Logger:     logDescartado(),
		Repository: repo,
		Parcelas:   parcelas,
		Contatos:   contatos,
		Config:     cfg,
		Unidades:   unidades,
		CRM:        crm,
	}
}

var (
	identAdmin = auth.Identidade{UserID: 1, AgencyID: "ag-1", Papel: auth.PapelAdmin}
	permsAdmin = preferencias.Permissoes{
		VerPropostas:         true,
		GerirPropostas:       true,
		VerEmpreendimentos:   true,
		GerirEmpreendimentos: true,
	}
)

func propostaBase() *Proposta {
	p := &Proposta{
		AgencyID:           "ag-1",
		UnidadeID:          7,
		CriadoPor:          1,
		ContatoPrincipalID: 201,
		Status:             StatusEmAnalise,
	}
	p.ID = 10
	return p
}

func TestMudarStatusAprovadaCascateiaVendido(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	contatos := &fakeContatoRepo{porID: map[uint]*contato.Contato{}}
	unidades := &fakeAtualizadorUnidade{}
	crm := &fakeCRM{}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, contatos, unidades, crm, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:       10,
		NovoStatus:       "aprovada",
		AtualizarUnidade: true,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAprovada, repo.propostas[10].Status)
	require.Len(t, unidades.chamadas, 1)
	assert.Equal(t, uint(7), unidades.chamadas[0].UnidadeID)
	assert.Equal(t, unidade.StatusVendido, unidades.chamadas[0].Status)
	assert.Nil(t, unidades.chamadas[0].ReservadoAte)
}

func TestMudarStatusNegadaCascateiaDisponivel(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	unidades := &fakeAtualizadorUnidade{}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, unidades, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:       10,
		NovoStatus:       "negada",
		AtualizarUnidade: true,
	})
	require.NoError(t, err)
	require.Len(t, unidades.chamadas, 1)
	assert.Equal(t, unidade.StatusDisponivel, unidades.chamadas[0].Status)
}

func TestMudarStatusFalhaDeWebhookDepoisDaEscrita(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	unidades := &fakeAtualizadorUnidade{
		err: &homio.ErroWebhook{Operacao: "status-unidade", Causa: errors.New("timeout")},
	}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, unidades, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:       10,
		NovoStatus:       "aprovada",
		AtualizarUnidade: true,
	})

	var erroWebhook *homio.ErroWebhook
	require.ErrorAs(t, err, &erroWebhook)
	// a escrita da proposta permanece: o commit parcial é observável
	assert.Equal(t, StatusAprovada, repo.propostas[10].Status)
}

func TestMudarStatusStatusInvalidoAntesDoBanco(t *testing.T) {
	repo := &fakePropostaRepo{}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID: 10,
		NovoStatus: "approved", // código interno não é aceito como externo
	})
	require.ErrorIs(t, err, ErrStatusInvalido)
	assert.Nil(t, repo.updates)
}

func TestMudarStatusExigeAdminEGate(t *testing.T) {
	corretor := auth.Identidade{UserID: 2, AgencyID: "ag-1", Papel: auth.PapelCorretor}

	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), corretor, preferencias.Permissoes{GerirPropostas: true}, ComandoStatus{
		PropostaID: 10,
		NovoStatus: "aprovada",
	})
	require.ErrorIs(t, err, ErrSemPermissao)

	err = svc.MudarStatus(context.Background(), identAdmin, preferencias.Permissoes{}, ComandoStatus{
		PropostaID: 10,
		NovoStatus: "aprovada",
	})
	require.ErrorIs(t, err, ErrSemPermissao)
}

func TestMudarStatusReservaSemData(t *testing.T) {
	p := propostaBase()
	p.Status = StatusAprovada
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: p}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:       10,
		NovoStatus:       "em_analise",
		AtualizarUnidade: true,
	})
	require.ErrorIs(t, err, ErrReservaSemData)
	assert.Nil(t, repo.updates)
}

func TestMudarStatusEmAnaliseComDataReservaUnidade(t *testing.T) {
	ate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	p := propostaBase()
	p.Status = StatusNegada
	repo := &fakePropostaRepo{
		propostas: map[uint]*Proposta{10: p},
		detalhe:   &DetalheSync{},
	}
	unidades := &fakeAtualizadorUnidade{}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, unidades, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:       10,
		NovoStatus:       "em_analise",
		AtualizarUnidade: true,
		ReservadoAte:     &ate,
	})
	require.NoError(t, err)
	require.Len(t, unidades.chamadas, 1)
	assert.Equal(t, unidade.StatusReservado, unidades.chamadas[0].Status)
	require.NotNil(t, unidades.chamadas[0].ReservadoAte)
	assert.Equal(t, ate, *unidades.chamadas[0].ReservadoAte)
	assert.Equal(t, &ate, repo.updates["reservado_ate"])
}

func TestMudarStatusReanaliseSemDataLimpaReserva(t *testing.T) {
	repo := &fakePropostaRepo{
		propostas: map[uint]*Proposta{10: propostaBase()},
		detalhe:   &DetalheSync{},
	}
	unidades := &fakeAtualizadorUnidade{}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, unidades, &fakeCRM{}, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:       10,
		NovoStatus:       "em_analise",
		AtualizarUnidade: true,
	})
	require.NoError(t, err)
	// sem data e já em análise: reserva é solta e a unidade fica como está
	valor, presente := repo.updates["reservado_ate"]
	assert.True(t, presente)
	assert.Nil(t, valor)
	assert.Empty(t, unidades.chamadas)
}

func TestSincronizacaoOportunidadeResolveCamposEOmiteVazios(t *testing.T) {
	ate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakePropostaRepo{
		propostas: map[uint]*Proposta{10: propostaBase()},
		detalhe: &DetalheSync{
			OpportunityID:      "opp-1",
			EmpreendimentoNome: "  Residencial Aurora  ",
			UnidadeNumero:      "104",
			Responsavel:        "",
			Observacoes:        "cliente quer vaga dupla",
		},
	}
	crm := &fakeCRM{}
	cfg := &fakeConfig{cfg: &agenciaconfig.AgenciaConfig{
		CamposOportunidade: agenciaconfig.MapaCampos{
			agenciaconfig.CampoEmpreendimento: "cf-emp",
			agenciaconfig.CampoUnidade:        "cf-uni",
			agenciaconfig.CampoReservadoAte:   "cf-res",
			// observacoes sem mapeamento: deve ser omitido
		},
	}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, crm, cfg)

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID:   10,
		NovoStatus:   "em_analise",
		ReservadoAte: &ate,
	})
	require.NoError(t, err)

	assert.Equal(t, "opp-1", crm.opportunityID)
	porID := map[string]string{}
	for _, c := range crm.campos {
		porID[c.ID] = c.FieldValue
	}
	assert.Equal(t, "Residencial Aurora", porID["cf-emp"])
	assert.Equal(t, "104", porID["cf-uni"])
	assert.Equal(t, "2026-10-01", porID["cf-res"])
	assert.NotContains(t, porID, "cf-obs")
	assert.Len(t, crm.campos, 3)
}

func TestSincronizacaoOportunidadeFalhaNaoAborta(t *testing.T) {
	repo := &fakePropostaRepo{
		propostas: map[uint]*Proposta{10: propostaBase()},
		detalhe:   &DetalheSync{OpportunityID: "opp-1", UnidadeNumero: "104"},
	}
	crm := &fakeCRM{errCampos: errors.New("CRM fora do ar")}
	cfg := &fakeConfig{cfg: &agenciaconfig.AgenciaConfig{
		CamposOportunidade: agenciaconfig.MapaCampos{agenciaconfig.CampoUnidade: "cf-uni"},
	}}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, crm, cfg)

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID: 10,
		NovoStatus: "em_analise",
	})
	require.NoError(t, err)
}

func TestAprovadaEnviaFinanceiro(t *testing.T) {
	inicio := time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)

	parcelaSinal := parcela.Parcela{
		Condicao: parcela.CondicaoSinal, Valor: 50000, Quantidade: 1, ValorTotal: 50000, DataInicial: &inicio,
	}
	parcelaSinal.ID = 1
	intermediarias := parcela.Parcela{
		Condicao: parcela.CondicaoIntermediarias, Valor: 20000, Quantidade: 2, ValorTotal: 40000, DataInicial: &inicio,
		Datas: []parcela.ParcelaData{{Data: d1}, {Data: d2}},
	}
	intermediarias.ID = 2

	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	contatos := &fakeContatoRepo{porID: map[uint]*contato.Contato{
		201: {AgencyID: "ag-1", HomioID: "homio-abc", Nome: "Ana"},
	}}
	parcelas := &fakeParcelaRepo{porProposta: map[uint][]parcela.Parcela{
		10: {parcelaSinal, intermediarias},
	}}
	crm := &fakeCRM{}
	svc := novoServicoTeste(repo, parcelas, contatos, &fakeAtualizadorUnidade{}, crm, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID: 10,
		NovoStatus: "aprovada",
	})
	require.NoError(t, err)

	require.NotNil(t, crm.financeiro)
	assert.Equal(t, "homio-abc", crm.financeiro.ContactExternalID)
	assert.Equal(t, "ag-1", crm.financeiro.AgencyID)
	require.Len(t, crm.financeiro.Installments, 2)

	// datas explícitas só aparecem na condição intermediarias
	assert.Empty(t, crm.financeiro.Installments[0].Dates)
	assert.Equal(t, []string{"2027-01-10", "2027-06-10"}, crm.financeiro.Installments[1].Dates)
	assert.Equal(t, "2026-11-10", crm.financeiro.Installments[0].FirstDate)
}

func TestAprovadaSemHomioIDNaoEnviaFinanceiro(t *testing.T) {
	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: propostaBase()}}
	contatos := &fakeContatoRepo{porID: map[uint]*contato.Contato{
		201: {AgencyID: "ag-1", HomioID: "", Nome: "Ana"},
	}}
	crm := &fakeCRM{}
	svc := novoServicoTeste(repo, &fakeParcelaRepo{}, contatos, &fakeAtualizadorUnidade{}, crm, &fakeConfig{})

	err := svc.MudarStatus(context.Background(), identAdmin, permsAdmin, ComandoStatus{
		PropostaID: 10,
		NovoStatus: "aprovada",
	})
	require.NoError(t, err)
	assert.Nil(t, crm.financeiro)
}

func TestCriarReaproveitaContatoExistente(t *testing.T) {
	existente := &contato.Contato{AgencyID: "ag-1", HomioID: "homio-abc", Nome: "Ana"}
	existente.ID = 201

	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{}}
	contatos := &fakeContatoRepo{porHomioID: map[string]*contato.Contato{"homio-abc": existente}}
	parcelas := &fakeParcelaRepo{}
	svc := novoServicoTeste(repo, parcelas, contatos, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})

	p, err := svc.Criar(context.Background(), identAdmin, ComandoCriar{
		UnidadeID:        7,
		ContatoPrincipal: ContatoInfo{HomioID: "homio-abc", Nome: "Ana"},
		ContatoSecundario: &ContatoInfo{
			HomioID: "homio-novo", Nome: "Bruno",
		},
		Parcelas: []parcela.ParcelaRequest{
			{Condicao: parcela.CondicaoSinal, Valor: 1000, Quantidade: 1, ValorTotal: 1000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(201), p.ContatoPrincipalID)
	require.NotNil(t, p.ContatoSecundarioID)
	assert.Equal(t, StatusEmAnalise, p.Status)
	assert.Equal(t, uint(1), p.CriadoPor)

	// só o secundário era novo
	require.Len(t, contatos.salvos, 1)
	assert.Equal(t, "homio-novo", contatos.salvos[0].HomioID)
	require.Len(t, parcelas.criadas, 1)
	assert.Equal(t, p.ID, parcelas.criadas[0].PropostaID)
}

func TestCriarRejeitaCondicaoInvalida(t *testing.T) {
	svc := novoServicoTeste(&fakePropostaRepo{}, &fakeParcelaRepo{}, &fakeContatoRepo{}, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})

	_, err := svc.Criar(context.Background(), identAdmin, ComandoCriar{
		UnidadeID:        7,
		ContatoPrincipal: ContatoInfo{HomioID: "homio-abc", Nome: "Ana"},
		Parcelas: []parcela.ParcelaRequest{
			{Condicao: "quinzenais", Valor: 1000, Quantidade: 1},
		},
	})
	require.ErrorIs(t, err, parcela.ErrCondicaoInvalida)
}

func TestDeletarPreservaContatoCompartilhado(t *testing.T) {
	p := propostaBase()
	sec := uint(202)
	p.ContatoSecundarioID = &sec

	repo := &fakePropostaRepo{propostas: map[uint]*Proposta{10: p}}
	contatos := &fakeContatoRepo{
		// o principal ainda é referenciado por outra proposta
		refs: map[uint]int64{201: 1, 202: 0},
	}
	parcelas := &fakeParcelaRepo{}
	svc := novoServicoTeste(repo, parcelas, contatos, &fakeAtualizadorUnidade{}, &fakeCRM{}, &fakeConfig{})

	err := svc.Deletar(context.Background(), identAdmin, permsAdmin, 10)
	require.NoError(t, err)

	assert.Equal(t, []uint{10}, repo.deletadas)
	assert.Equal(t, []uint{10}, parcelas.limpas)
	assert.Equal(t, []uint{202}, contatos.deletados)
}
