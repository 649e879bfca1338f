package reconcile

import "lglog/internal/model"

// aliases traduz os nomes de campo nativos de cada plataforma para o
// vocabulário canônico. Nome desconhecido passa adiante sem mudar — os
// atributos de envio do Frete Barato (peso, valor_frete, prazo_dias,
// transportadora) já são o vocabulário do domínio.
var aliases = map[model.Source]map[string]string{
	model.SourceGuru: {
		"product_name": "title",
		"unit_price":   "price",
		"qty":          "quantity",
		"offer_name":   "offer",
		"product_id":   "guru_product_id",
	},
	model.SourceShopify: {
		"inventory_quantity": "stock",
		"body_html":          "description",
		"product_id":         "shopify_product_id",
	},
	model.SourceFreteBarato: {
		"produto": "title",
	},
}

func harmonize(src model.Source, campo string) string {
	if m, ok := aliases[src]; ok {
		if canonico, ok := m[campo]; ok {
			return canonico
		}
	}
	return campo
}
