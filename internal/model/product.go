package model

import "time"

// Source identifica a plataforma de origem de um registro.
type Source string

const (
	SourceGuru        Source = "guru"
	SourceShopify     Source = "shopify"
	SourceFreteBarato Source = "fretebarato"

	// ProvenanceOverride marca campos vindos do skus_info do chamador.
	ProvenanceOverride Source = "override"
)

// Sources lista as fontes na ordem de prioridade de reconciliação:
// Guru é o sistema de registro do catálogo, Shopify manda nos atributos
// de vitrine e Frete Barato só contribui atributos de envio.
var Sources = []Source{SourceGuru, SourceShopify, SourceFreteBarato}

// PlatformRecord é um registro cru de uma plataforma, com os nomes de
// campo nativos da API de origem. Pertence ao adapter até ser entregue
// ao motor de reconciliação.
type PlatformRecord struct {
	SKU       string
	Source    Source
	Fields    map[string]Value
	FetchedAt time.Time
}

// CanonicalProduct é o produto consolidado por SKU. Depois de criado pelo
// motor de reconciliação ele é tratado como imutável; a aplicação de
// overrides produz uma cópia.
type CanonicalProduct struct {
	SKU        string            `json:"sku"`
	Fields     map[string]Value  `json:"campos"`
	Provenance map[string]Source `json:"proveniencia"`
}

func (p CanonicalProduct) Clone() CanonicalProduct {
	out := CanonicalProduct{
		SKU:        p.SKU,
		Fields:     make(map[string]Value, len(p.Fields)),
		Provenance: make(map[string]Source, len(p.Provenance)),
	}
	for k, v := range p.Fields {
		out.Fields[k] = v
	}
	for k, v := range p.Provenance {
		out.Provenance[k] = v
	}
	return out
}

// SKUInfo é uma entrada do catálogo (skus.json).
type SKUInfo struct {
	SKU           string   `json:"sku"`
	Peso          float64  `json:"peso,omitempty"`
	Tipo          string   `json:"tipo,omitempty"`
	GuruIDs       []string `json:"guru_ids,omitempty"`
	Indisponivel  bool     `json:"indisponivel,omitempty"`
	PrecoFallback float64  `json:"preco_fallback,omitempty"`
}
