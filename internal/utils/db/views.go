package db

import "gorm.io/gorm"

// Views de leitura pré-juntando nomes de contato/unidade/empreendimento e o
// total das parcelas. Recriadas a cada subida, depois do AutoMigrate.
const viewPropostasResumo = `
CREATE OR REPLACE VIEW vw_propostas_resumo AS
SELECT p.id,
       p.agency_id,
       p.status,
       p.reservado_ate,
       p.responsavel,
       p.criado_por,
       p.created_at,
       c.nome  AS contato_nome,
       c.homio_id AS contato_homio_id,
       u.id    AS unidade_id,
       COALESCE(NULLIF(u.nome, ''), u.numero) AS unidade_nome,
       e.nome  AS empreendimento_nome,
       COALESCE(t.total, 0) AS valor_total
FROM propostas p
LEFT JOIN contatos c        ON c.id = p.contato_principal_id
LEFT JOIN unidades u        ON u.id = p.unidade_id
LEFT JOIN empreendimentos e ON e.id = u.empreendimento_id
LEFT JOIN (
    SELECT proposta_id, SUM(valor_total) AS total
    FROM parcelas
    WHERE deleted_at IS NULL
    GROUP BY proposta_id
) t ON t.proposta_id = p.id
WHERE p.deleted_at IS NULL
`

const viewUnidadesResumo = `
CREATE OR REPLACE VIEW vw_unidades_resumo AS
SELECT u.id,
       u.empreendimento_id,
       e.agency_id,
       e.nome AS empreendimento_nome,
       COALESCE(NULLIF(u.nome, ''), u.numero) AS unidade_nome,
       u.torre,
       u.andar,
       u.status,
       u.valor_bruto,
       u.taxa_correcao,
       u.valor_bruto * (1 + u.taxa_correcao) AS valor_atual
FROM unidades u
JOIN empreendimentos e ON e.id = u.empreendimento_id
WHERE u.deleted_at IS NULL
`

// CriarViews cria as views de leitura do módulo de propostas.
func CriarViews(db *gorm.DB) error {
	if err := db.Exec(viewPropostasResumo).Error; err != nil {
		return err
	}
	return db.Exec(viewUnidadesResumo).Error
}
