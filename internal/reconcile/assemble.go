package reconcile

import (
	"sort"
	"time"

	"lglog/internal/model"
)

// Assemble monta o resultado final: produtos em ordem crescente de SKU
// mais o bloco de diagnóstico. Única saída observável da coleta.
func Assemble(
	runID string,
	q model.SearchQuery,
	fontes map[model.Source]model.SourceDiag,
	products map[string]model.CanonicalProduct,
	overridesAplicados int,
	duracao time.Duration,
) *model.Reconciliation {
	skus := make([]string, 0, len(products))
	for sku := range products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	ordenados := make([]model.CanonicalProduct, 0, len(skus))
	for _, sku := range skus {
		ordenados = append(ordenados, products[sku])
	}

	return &model.Reconciliation{
		RunID:    runID,
		Inicio:   q.DataIni.ISO(),
		Fim:      q.DataFim.ISO(),
		Produtos: ordenados,
		Fontes:   fontes,
		Totais: model.Totals{
			Produtos:  len(ordenados),
			Overrides: overridesAplicados,
		},
		DuracaoMs: duracao.Milliseconds(),
	}
}
