package reconcile

import (
	"errors"

	"lglog/internal/adapter"
	"lglog/internal/model"
)

// Merged é a saída do motor de reconciliação antes dos overrides.
type Merged struct {
	Products map[string]model.CanonicalProduct
	Fontes   map[model.Source]model.SourceDiag
}

// Merge consolida os registros de todas as fontes por SKU. Campo presente
// na fonte de maior prioridade vence; campo exclusivo de fonte menor entra
// mesmo assim, com proveniência. Fonte que falhou inteira só aparece no
// diagnóstico — a coleta inteira só falha se todas falharem.
func Merge(outcomes []adapter.Outcome) (*Merged, error) {
	porFonte := make(map[model.Source]adapter.Outcome, len(outcomes))
	for _, o := range outcomes {
		porFonte[o.Source] = o
	}

	out := &Merged{
		Products: make(map[string]model.CanonicalProduct),
		Fontes:   make(map[model.Source]model.SourceDiag),
	}

	falhas := 0
	// percorre na ordem de prioridade fixa: o primeiro a escrever um campo vence
	for _, src := range model.Sources {
		o, ok := porFonte[src]
		if !ok {
			continue
		}
		if o.Err != nil {
			falhas++
			out.Fontes[src] = diagFalha(o.Err)
			continue
		}

		diag := model.SourceDiag{Fetched: len(o.Records), Skipped: o.Skipped}
		for _, rec := range o.Records {
			if rec.SKU == "" {
				diag.Skipped++
				continue
			}
			mergeRecord(out.Products, src, rec)
		}

		if diag.Skipped > 0 {
			diag.Status = model.StatusPartial
		} else {
			diag.Status = model.StatusSuccess
		}
		out.Fontes[src] = diag
	}

	if len(porFonte) > 0 && falhas == len(porFonte) {
		return nil, model.ErrAllSourcesUnavailable
	}
	return out, nil
}

func mergeRecord(products map[string]model.CanonicalProduct, src model.Source, rec model.PlatformRecord) {
	p, ok := products[rec.SKU]
	if !ok {
		p = model.CanonicalProduct{
			SKU:        rec.SKU,
			Fields:     make(map[string]model.Value),
			Provenance: make(map[string]model.Source),
		}
	}
	for nativo, v := range rec.Fields {
		campo := harmonize(src, nativo)
		if _, existe := p.Fields[campo]; existe {
			continue
		}
		p.Fields[campo] = v
		p.Provenance[campo] = src
	}
	products[rec.SKU] = p
}

func diagFalha(err error) model.SourceDiag {
	diag := model.SourceDiag{Status: model.StatusFailed, Erro: err.Error()}
	var serr *adapter.SourceError
	if errors.As(err, &serr) && serr.Kind == adapter.KindTimeout {
		diag.Status = model.StatusTimeout
	}
	return diag
}
