package proposta

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/primehaus/backoffice/internal/agenciaconfig"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/cache"
	"github.com/primehaus/backoffice/internal/contato"
	"github.com/primehaus/backoffice/internal/homio"
	"github.com/primehaus/backoffice/internal/parcela"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/unidade"
	"gorm.io/gorm"
)

// ErrSemPermissao indica que o perfil autenticado não pode executar a
// operação sobre essa proposta.
var ErrSemPermissao = errors.New("sem permissão para gerir essa proposta")

const (
	formatoData     = "2006-01-02"
	tipoCacheResumo = "propostas_resumo"
)

// ClienteCRM agrupa as chamadas best-effort ao CRM: falha aqui é logada e
// nunca aborta a operação.
type ClienteCRM interface {
	AtualizarCamposOportunidade(ctx context.Context, opportunityID string, campos []homio.CampoValor) error
	EnviarFinanceiro(ctx context.Context, payload homio.PayloadFinanceiro) error
}

// AtualizadorUnidade é a escrita confirmada de status de unidade. Erro de
// webhook volta como *homio.ErroWebhook e se propaga ao chamador.
type AtualizadorUnidade interface {
	AtualizarStatusConfirmado(ctx context.Context, id uint, agencyID, statusInterno string, reservadoAte *time.Time) error
}

// ConfiguracaoAgencia fornece o mapeamento de custom fields da agência.
type ConfiguracaoAgencia interface {
	BuscarPorAgencia(agencyID string) (*agenciaconfig.AgenciaConfig, error)
}

type Service struct {
	DB         *gorm.DB
	Logger     *slog.Logger
	Repository Repository
	Parcelas   parcela.Repository
	Contatos   contato.Repository
	Config     ConfiguracaoAgencia
	Unidades   AtualizadorUnidade
	CRM        ClienteCRM
	Cache      *cache.Cache
}

func NewService(db *gorm.DB, logger *slog.Logger, config ConfiguracaoAgencia, unidades AtualizadorUnidade, crm ClienteCRM, c *cache.Cache) *Service {
	return &Service{
		DB:         db,
		Logger:     logger,
		Repository: NewRepository(),
		Parcelas:   parcela.NewRepository(),
		Contatos:   contato.NewRepository(),
		Config:     config,
		Unidades:   unidades,
		CRM:        crm,
		Cache:      c,
	}
}

func (s *Service) invalidarResumo(agencyID string) {
	if s.Cache != nil {
		s.Cache.InvalidarTipo(tipoCacheResumo, agencyID)
	}
}

// ListarResumo lê a view de listagem, com o filtro de criador quando o
// perfil só enxerga as próprias propostas. O resultado fica cacheado por
// escopo até a próxima mutação da agência.
func (s *Service) ListarResumo(ident auth.Identidade, perms preferencias.Permissoes) ([]PropostaResumo, error) {
	var criadoPor *uint
	escopo := "todas"
	if perms.SomenteProprias {
		criadoPor = &ident.UserID
		escopo = "criador:" + strconv.FormatUint(uint64(ident.UserID), 10)
	}

	chave := cache.Chave{Tipo: tipoCacheResumo, Agencia: ident.AgencyID, Escopo: escopo}
	if s.Cache != nil {
		if v, ok := s.Cache.Obter(chave); ok {
			return v.([]PropostaResumo), nil
		}
	}

	list, err := s.Repository.ListarResumo(s.DB, ident.AgencyID, criadoPor)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Definir(chave, list)
	}
	return list, nil
}

// ContatoInfo identifica um contato pela chave do CRM; o registro local é
// criado na primeira vez que aparece.
type ContatoInfo struct {
	HomioID string
	Nome    string
}

type ComandoCriar struct {
	UnidadeID         uint
	OpportunityID     string
	Responsavel       string
	Observacoes       string
	ReservadoAte      *time.Time
	ContatoPrincipal  ContatoInfo
	ContatoSecundario *ContatoInfo
	Parcelas          []parcela.ParcelaRequest
}

// Criar grava a proposta vinda do wizard: contatos são reaproveitados pelo
// HomioID quando já existem, e as parcelas entram em lote.
func (s *Service) Criar(ctx context.Context, ident auth.Identidade, cmd ComandoCriar) (*Proposta, error) {
	principal, err := s.garantirContato(ident.AgencyID, cmd.ContatoPrincipal)
	if err != nil {
		return nil, err
	}

	var secundarioID *uint
	if cmd.ContatoSecundario != nil {
		sec, err := s.garantirContato(ident.AgencyID, *cmd.ContatoSecundario)
		if err != nil {
			return nil, err
		}
		secundarioID = &sec.ID
	}

	p := &Proposta{
		AgencyID:            ident.AgencyID,
		UnidadeID:           cmd.UnidadeID,
		CriadoPor:           ident.UserID,
		ContatoPrincipalID:  principal.ID,
		ContatoSecundarioID: secundarioID,
		OpportunityID:       cmd.OpportunityID,
		Status:              StatusEmAnalise,
		ReservadoAte:        cmd.ReservadoAte,
		Responsavel:         cmd.Responsavel,
		Observacoes:         cmd.Observacoes,
	}
	if err := s.Repository.Salvar(s.DB, p); err != nil {
		return nil, err
	}

	parcelas := make([]*parcela.Parcela, 0, len(cmd.Parcelas))
	for _, req := range cmd.Parcelas {
		pc, err := req.Montar(ident.AgencyID, p.ID)
		if err != nil {
			return nil, err
		}
		parcelas = append(parcelas, pc)
	}
	if err := s.Parcelas.CriarEmLote(s.DB, parcelas); err != nil {
		return nil, err
	}
	s.invalidarResumo(ident.AgencyID)
	return p, nil
}

func (s *Service) garantirContato(agencyID string, info ContatoInfo) (*contato.Contato, error) {
	existente, err := s.Contatos.BuscarPorHomioID(s.DB, info.HomioID, agencyID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return existente, nil
	}
	novo := &contato.Contato{
		AgencyID: agencyID,
		HomioID:  info.HomioID,
		Nome:     info.Nome,
	}
	if err := s.Contatos.Salvar(s.DB, novo); err != nil {
		return nil, err
	}
	return novo, nil
}

type ComandoStatus struct {
	PropostaID uint
	// NovoStatus vem no vocabulário externo (em_analise/aprovada/negada).
	NovoStatus       string
	AtualizarUnidade bool
	ReservadoAte     *time.Time
}

// MudarStatus executa a transição de status da proposta e seus efeitos.
// A ordem importa: o vocabulário é validado antes de qualquer acesso ao
// banco, e a escrita da proposta acontece antes da cascata de unidade. Uma
// falha de webhook depois da escrita volta como *homio.ErroWebhook com a
// proposta já atualizada.
func (s *Service) MudarStatus(ctx context.Context, ident auth.Identidade, perms preferencias.Permissoes, cmd ComandoStatus) error {
	interno, err := StatusParaInterno(cmd.NovoStatus)
	if err != nil {
		return err
	}

	p, err := s.Repository.BuscarPorID(s.DB, cmd.PropostaID, ident.AgencyID)
	if err != nil {
		return err
	}

	// transição de status é restrita a admin, e ainda depende do gate
	if !ident.EhAdmin() || !perms.GerirPropostas {
		return ErrSemPermissao
	}

	if err := ValidarMudancaStatus(p.Status, interno, cmd.AtualizarUnidade, cmd.ReservadoAte); err != nil {
		return err
	}

	campos := map[string]interface{}{"status": interno}
	if interno == StatusEmAnalise {
		if cmd.ReservadoAte != nil {
			campos["reservado_ate"] = cmd.ReservadoAte
		} else if cmd.AtualizarUnidade && p.Status == StatusEmAnalise {
			// re-análise sem nova data solta a reserva antiga
			campos["reservado_ate"] = nil
		}
	}

	linhas, err := s.Repository.AtualizarStatus(s.DB, cmd.PropostaID, ident.AgencyID, campos)
	if err != nil {
		return err
	}
	if linhas == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidarResumo(ident.AgencyID)

	if cmd.AtualizarUnidade {
		if err := s.cascatearUnidade(ctx, p, interno, cmd.ReservadoAte); err != nil {
			return err
		}
	}

	switch interno {
	case StatusEmAnalise:
		s.sincronizarOportunidade(ctx, ident.AgencyID, cmd.PropostaID, cmd.ReservadoAte)
	case StatusAprovada:
		s.enviarFinanceiro(ctx, ident.AgencyID, p)
	}
	return nil
}

// cascatearUnidade propaga o novo status da proposta para a unidade. Essa é
// uma escrita confirmada: o erro (inclusive de webhook) se propaga.
func (s *Service) cascatearUnidade(ctx context.Context, p *Proposta, statusInterno string, reservadoAte *time.Time) error {
	switch statusInterno {
	case StatusAprovada:
		return s.Unidades.AtualizarStatusConfirmado(ctx, p.UnidadeID, p.AgencyID, unidade.StatusVendido, nil)
	case StatusNegada:
		return s.Unidades.AtualizarStatusConfirmado(ctx, p.UnidadeID, p.AgencyID, unidade.StatusDisponivel, nil)
	case StatusEmAnalise:
		if reservadoAte == nil {
			// só alcançável quando a proposta já estava em análise; a
			// unidade permanece como está
			return nil
		}
		return s.Unidades.AtualizarStatusConfirmado(ctx, p.UnidadeID, p.AgencyID, unidade.StatusReservado, reservadoAte)
	}
	return nil
}

// sincronizarOportunidade recomputa os custom fields da oportunidade no CRM.
// Best-effort do começo ao fim: qualquer falha vira log.
func (s *Service) sincronizarOportunidade(ctx context.Context, agencyID string, propostaID uint, reservadoAteOverride *time.Time) {
	det, err := s.Repository.BuscarDetalheSync(s.DB, propostaID, agencyID)
	if err != nil {
		s.Logger.Warn("sincronização de oportunidade falhou na leitura",
			"propostaId", propostaID, "erro", err)
		return
	}
	if det.OpportunityID == "" {
		return
	}

	cfg, err := s.Config.BuscarPorAgencia(agencyID)
	if err != nil {
		s.Logger.Warn("sincronização de oportunidade falhou na configuração",
			"propostaId", propostaID, "erro", err)
		return
	}
	if cfg == nil || len(cfg.CamposOportunidade) == 0 {
		return
	}

	reservadoAte := det.ReservadoAte
	if reservadoAteOverride != nil {
		reservadoAte = reservadoAteOverride
	}

	unidadeNome := det.UnidadeNome
	if unidadeNome == "" {
		unidadeNome = det.UnidadeNumero
	}

	valores := map[string]string{
		agenciaconfig.CampoEmpreendimento: det.EmpreendimentoNome,
		agenciaconfig.CampoUnidade:        unidadeNome,
		agenciaconfig.CampoResponsavel:    det.Responsavel,
		agenciaconfig.CampoObservacoes:    det.Observacoes,
	}
	if reservadoAte != nil {
		valores[agenciaconfig.CampoReservadoAte] = reservadoAte.Format(formatoData)
	}

	campos := make([]homio.CampoValor, 0, len(valores))
	for campo, valor := range valores {
		valor = strings.TrimSpace(valor)
		if valor == "" {
			continue
		}
		id, ok := cfg.CamposOportunidade.Resolver(campo)
		if !ok {
			continue
		}
		campos = append(campos, homio.CampoValor{ID: id, FieldValue: valor})
	}
	if len(campos) == 0 {
		return
	}

	if err := s.CRM.AtualizarCamposOportunidade(ctx, det.OpportunityID, campos); err != nil {
		s.Logger.Warn("sincronização de oportunidade falhou no CRM",
			"propostaId", propostaID, "opportunityId", det.OpportunityID, "erro", err)
	}
}

// enviarFinanceiro monta o plano de pagamento da proposta aprovada e empurra
// ao webhook financeiro. Best-effort; sem HomioID no contato principal não
// há destino e nada é enviado.
func (s *Service) enviarFinanceiro(ctx context.Context, agencyID string, p *Proposta) {
	c, err := s.Contatos.BuscarPorID(s.DB, p.ContatoPrincipalID, agencyID)
	if err != nil {
		s.Logger.Warn("envio financeiro falhou na leitura do contato",
			"propostaId", p.ID, "erro", err)
		return
	}
	if c.HomioID == "" {
		return
	}

	parcelas, err := s.Parcelas.ListarPorProposta(s.DB, p.ID)
	if err != nil {
		s.Logger.Warn("envio financeiro falhou na leitura das parcelas",
			"propostaId", p.ID, "erro", err)
		return
	}

	installments := make([]homio.ParcelaFinanceira, 0, len(parcelas))
	for _, pc := range parcelas {
		item := homio.ParcelaFinanceira{
			ID:          pc.ID,
			Condition:   pc.Condicao,
			Amount:      pc.Valor,
			Count:       pc.Quantidade,
			TotalAmount: pc.ValorTotal,
		}
		if pc.DataInicial != nil {
			item.FirstDate = pc.DataInicial.Format(formatoData)
		}
		if pc.Condicao == parcela.CondicaoIntermediarias {
			for _, d := range pc.Datas {
				item.Dates = append(item.Dates, d.Data.Format(formatoData))
			}
		}
		installments = append(installments, item)
	}

	payload := homio.PayloadFinanceiro{
		ContactExternalID: c.HomioID,
		AgencyID:          agencyID,
		Installments:      installments,
	}
	if err := s.CRM.EnviarFinanceiro(ctx, payload); err != nil {
		s.Logger.Warn("envio financeiro falhou no CRM",
			"propostaId", p.ID, "contatoExterno", c.HomioID, "erro", err)
	}
}

// Deletar remove a proposta, suas parcelas e os contatos que ficarem órfãos.
func (s *Service) Deletar(ctx context.Context, ident auth.Identidade, perms preferencias.Permissoes, id uint) error {
	p, err := s.Repository.BuscarPorID(s.DB, id, ident.AgencyID)
	if err != nil {
		return err
	}

	if !perms.GerirPropostas {
		return ErrSemPermissao
	}
	if perms.SomenteProprias && p.CriadoPor != ident.UserID {
		return ErrSemPermissao
	}

	if err := s.Parcelas.DeletarPorProposta(s.DB, p.ID); err != nil {
		return err
	}
	if err := s.Repository.Deletar(s.DB, p.ID); err != nil {
		return err
	}
	s.invalidarResumo(ident.AgencyID)

	contatos := []uint{p.ContatoPrincipalID}
	if p.ContatoSecundarioID != nil {
		contatos = append(contatos, *p.ContatoSecundarioID)
	}
	for _, contatoID := range contatos {
		refs, err := s.Contatos.ContarReferencias(s.DB, contatoID)
		if err != nil {
			return err
		}
		if refs == 0 {
			if err := s.Contatos.Deletar(s.DB, contatoID); err != nil {
				return err
			}
		}
	}
	return nil
}
