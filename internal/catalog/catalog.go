package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"lglog/internal/model"
)

const TipoAssinatura = "assinatura"

// Catalog é o dicionário de SKUs do domínio (skus.json): nome de produto
// -> info (sku, peso, tipo, guru_ids, indisponível).
type Catalog struct {
	PorNome map[string]model.SKUInfo

	porNomeNorm map[string]string
	porGuruID   map[string]string
	porSKU      map[string]string
}

func New(porNome map[string]model.SKUInfo) *Catalog {
	c := &Catalog{
		PorNome:     porNome,
		porNomeNorm: make(map[string]string, len(porNome)),
		porGuruID:   make(map[string]string),
		porSKU:      make(map[string]string),
	}
	for nome, info := range porNome {
		c.porNomeNorm[NormalizeNome(nome)] = nome
		for _, gid := range info.GuruIDs {
			if g := strings.TrimSpace(gid); g != "" {
				c.porGuruID[g] = nome
			}
		}
		if sku := strings.ToUpper(strings.TrimSpace(info.SKU)); sku != "" {
			c.porSKU[sku] = nome
		}
	}
	return c
}

// Load lê o skus.json. Se o arquivo ainda não existir, cria um exemplo
// mínimo (comportamento herdado do back-office original).
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		seed := map[string]model.SKUInfo{
			"Exemplo Produto": {SKU: "X001", Peso: 1.0, Tipo: "produto"},
		}
		if b, err = json.MarshalIndent(seed, "", "    "); err != nil {
			return nil, err
		}
		if err = os.WriteFile(path, b, 0o644); err != nil {
			return nil, fmt.Errorf("criando skus.json de exemplo: %w", err)
		}
		return New(seed), nil
	}
	if err != nil {
		return nil, err
	}

	var porNome map[string]model.SKUInfo
	if err := json.Unmarshal(b, &porNome); err != nil {
		return nil, fmt.Errorf("skus.json inválido: %w", err)
	}
	return New(porNome), nil
}

// Info busca por nome exato e, se falhar, por nome normalizado
// (sem acento, sem caixa).
func (c *Catalog) Info(nome string) (model.SKUInfo, bool) {
	if info, ok := c.PorNome[nome]; ok {
		return info, true
	}
	if original, ok := c.porNomeNorm[NormalizeNome(nome)]; ok {
		return c.PorNome[original], true
	}
	return model.SKUInfo{}, false
}

func (c *Catalog) PorGuruID(guruID string) (model.SKUInfo, bool) {
	nome, ok := c.porGuruID[strings.TrimSpace(guruID)]
	if !ok {
		return model.SKUInfo{}, false
	}
	return c.PorNome[nome], true
}

// Indisponivel responde se o produto está marcado como indisponível,
// aceitando nome ou SKU como chave.
func (c *Catalog) Indisponivel(nome, sku string) bool {
	if info, ok := c.Info(nome); ok {
		return info.Indisponivel
	}
	if n, ok := c.porSKU[strings.ToUpper(strings.TrimSpace(sku))]; ok {
		return c.PorNome[n].Indisponivel
	}
	return false
}

// Produtos devolve só as entradas de tipo produto — assinaturas ficam
// fora da coleta de vendas de produtos.
func (c *Catalog) Produtos() map[string]model.SKUInfo {
	out := make(map[string]model.SKUInfo, len(c.PorNome))
	for nome, info := range c.PorNome {
		if strings.EqualFold(strings.TrimSpace(info.Tipo), TipoAssinatura) {
			continue
		}
		out[nome] = info
	}
	return out
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeNome tira acento e caixa para comparação de nomes de produto.
func NormalizeNome(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
