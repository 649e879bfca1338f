package reconcile

import "lglog/internal/model"

// ApplyOverrides aplica o skus_info do chamador por cima do resultado
// reconciliado. Só os campos nomeados no override mudam (proveniência
// "override", acima de qualquer fonte); SKU desconhecido das plataformas
// é sintetizado só com os campos do override. O mapa de entrada não é
// alterado — cada produto tocado é clonado.
func ApplyOverrides(products map[string]model.CanonicalProduct, ov model.Overrides) (map[string]model.CanonicalProduct, int) {
	out := make(map[string]model.CanonicalProduct, len(products))
	for sku, p := range products {
		out[sku] = p
	}

	aplicados := 0
	for sku, campos := range ov {
		if len(campos) == 0 {
			continue
		}
		p, ok := out[sku]
		if ok {
			p = p.Clone()
		} else {
			p = model.CanonicalProduct{
				SKU:        sku,
				Fields:     make(map[string]model.Value, len(campos)),
				Provenance: make(map[string]model.Source, len(campos)),
			}
		}
		for campo, v := range campos {
			p.Fields[campo] = v
			p.Provenance[campo] = model.ProvenanceOverride
			aplicados++
		}
		out[sku] = p
	}
	return out, aplicados
}
