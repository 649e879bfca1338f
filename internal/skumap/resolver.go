package skumap

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"lglog/internal/catalog"
)

const naoEncontrado = "NENHUM"

// Resolver traduz a identidade de produto do Guru (guru_id ou nome de
// marketing) para o SKU do catálogo. Ordem: guru_ids do catálogo, nome
// normalizado e, por último, um palpite do GPT restrito aos SKUs
// conhecidos. Sem chave de API o fallback fica desligado e a resolução
// degrada para "não resolvido" — nunca derruba a coleta.
type Resolver struct {
	cat *catalog.Catalog
	ai  *openai.Client

	mu    sync.Mutex
	cache map[string]string // nome normalizado -> SKU ("" = já tentado, sem resposta)
}

func New(cat *catalog.Catalog, openaiKey string) *Resolver {
	r := &Resolver{cat: cat, cache: make(map[string]string)}
	if openaiKey != "" {
		r.ai = openai.NewClient(openaiKey)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, guruID, nome string) (string, bool) {
	if info, ok := r.cat.PorGuruID(guruID); ok && info.SKU != "" {
		return info.SKU, true
	}
	if info, ok := r.cat.Info(nome); ok && info.SKU != "" {
		return info.SKU, true
	}
	return r.resolveLLM(ctx, nome)
}

func (r *Resolver) resolveLLM(ctx context.Context, nome string) (string, bool) {
	if r.ai == nil || strings.TrimSpace(nome) == "" {
		return "", false
	}

	chave := catalog.NormalizeNome(nome)
	r.mu.Lock()
	if sku, ok := r.cache[chave]; ok {
		r.mu.Unlock()
		return sku, sku != ""
	}
	r.mu.Unlock()

	sku := r.perguntar(ctx, nome)
	r.mu.Lock()
	r.cache[chave] = sku
	r.mu.Unlock()
	return sku, sku != ""
}

func (r *Resolver) perguntar(ctx context.Context, nome string) string {
	conhecidos := r.skusConhecidos()
	if len(conhecidos) == 0 {
		return ""
	}

	prompt := fmt.Sprintf(
		"Você mapeia nomes de marketing de produtos para SKUs do catálogo.\n"+
			"SKUs válidos: %s\n"+
			"Responda SOMENTE com um SKU da lista, ou %s se nenhum corresponder.\n"+
			"Produto: %q",
		strings.Join(conhecidos, ", "), naoEncontrado, nome,
	)

	resp, err := r.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: "system", Content: "Responda apenas com o SKU ou " + naoEncontrado + "."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		log.Printf("Erro no fallback GPT para %q: %v", nome, err)
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}

	sku := strings.ToUpper(strings.TrimSpace(resp.Choices[0].Message.Content))
	if sku == naoEncontrado {
		return ""
	}
	for _, s := range conhecidos {
		if s == sku {
			return sku
		}
	}
	// resposta fora da lista não vale
	return ""
}

func (r *Resolver) skusConhecidos() []string {
	set := make(map[string]struct{})
	for _, info := range r.cat.Produtos() {
		if s := strings.ToUpper(strings.TrimSpace(info.SKU)); s != "" {
			set[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
