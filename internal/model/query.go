package model

import "strings"

// SearchQuery é a consulta já normalizada entregue aos adapters.
// Nunca carrega skus_info: override é aplicado depois da reconciliação.
type SearchQuery struct {
	DataIni     Date
	DataFim     Date
	NomeProduto string // vazio = sem filtro
}

// MatchName aplica o filtro de nome como substring case-insensitive.
// Sem filtro, todo nome casa.
func (q SearchQuery) MatchName(nome string) bool {
	if q.NomeProduto == "" {
		return true
	}
	return strings.Contains(strings.ToLower(nome), strings.ToLower(q.NomeProduto))
}

// Overrides é o skus_info do chamador: SKU -> campos a sobrescrever.
type Overrides map[string]map[string]Value

// SourceStatus resume o desfecho de uma fonte na coleta.
type SourceStatus string

const (
	StatusSuccess SourceStatus = "success"
	StatusPartial SourceStatus = "partial"
	StatusFailed  SourceStatus = "failed"
	StatusTimeout SourceStatus = "timeout"
)

type SourceDiag struct {
	Status  SourceStatus `json:"status"`
	Fetched int          `json:"registros_coletados"`
	Skipped int          `json:"registros_ignorados"`
	Erro    string       `json:"erro,omitempty"`
}

type Totals struct {
	Produtos  int `json:"produtos"`
	Overrides int `json:"overrides_aplicados"`
}

// Reconciliation é o resultado final da coleta: produtos consolidados em
// ordem crescente de SKU mais o bloco de diagnóstico por fonte.
type Reconciliation struct {
	RunID     string                `json:"run_id"`
	Inicio    string                `json:"inicio"`
	Fim       string                `json:"fim"`
	Produtos  []CanonicalProduct    `json:"produtos"`
	Fontes    map[Source]SourceDiag `json:"fontes"`
	Totais    Totals                `json:"totais"`
	DuracaoMs int64                 `json:"duracao_ms"`
}
