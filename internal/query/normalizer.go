package query

import (
	"strings"

	"lglog/internal/model"
)

// Request é o corpo de entrada de POST /produtos/coletar, já decodificado.
type Request struct {
	DataIni     model.Date      `json:"data_ini"`
	DataFim     model.Date      `json:"data_fim"`
	NomeProduto string          `json:"nome_produto,omitempty"`
	SKUsInfo    model.Overrides `json:"skus_info,omitempty"`
}

// Normalize valida e canonicaliza a consulta. Nenhum I/O acontece aqui.
// Retorna a SearchQuery para os adapters e os overrides já saneados
// (os adapters nunca veem skus_info).
func Normalize(req Request) (model.SearchQuery, model.Overrides, error) {
	if req.DataIni.IsZero() {
		return model.SearchQuery{}, nil, &model.ValidationError{Campo: "data_ini", Motivo: "obrigatório"}
	}
	if req.DataFim.IsZero() {
		return model.SearchQuery{}, nil, &model.ValidationError{Campo: "data_fim", Motivo: "obrigatório"}
	}
	if req.DataFim.Before(req.DataIni.Time) {
		return model.SearchQuery{}, nil, &model.ValidationError{
			Campo:  "data_fim",
			Motivo: "data_fim não pode ser anterior a data_ini",
		}
	}

	q := model.SearchQuery{
		DataIni:     req.DataIni,
		DataFim:     req.DataFim,
		NomeProduto: strings.TrimSpace(req.NomeProduto),
	}

	overrides, err := normalizeOverrides(req.SKUsInfo)
	if err != nil {
		return model.SearchQuery{}, nil, err
	}
	return q, overrides, nil
}

func normalizeOverrides(in model.Overrides) (model.Overrides, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(model.Overrides, len(in))
	for sku, campos := range in {
		key := strings.TrimSpace(sku)
		if key == "" {
			return nil, &model.ValidationError{Campo: "skus_info", Motivo: "SKU vazio na chave"}
		}
		if campos == nil {
			return nil, &model.ValidationError{
				Campo:  "skus_info." + key,
				Motivo: "valor deve ser um mapa de campo para valor",
			}
		}
		fields := make(map[string]model.Value, len(campos))
		for nome, v := range campos {
			nomeCampo := strings.TrimSpace(nome)
			if nomeCampo == "" {
				return nil, &model.ValidationError{
					Campo:  "skus_info." + key,
					Motivo: "nome de campo vazio",
				}
			}
			fields[nomeCampo] = v
		}
		out[key] = fields
	}
	return out, nil
}
