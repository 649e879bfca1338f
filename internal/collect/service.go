package collect

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"lglog/internal/adapter"
	"lglog/internal/model"
	"lglog/internal/observability"
	"lglog/internal/reconcile"
)

// RunStore é o destino da auditoria de coleta (Postgres). Opcional.
type RunStore interface {
	Save(ctx context.Context, nomeProduto string, res *model.Reconciliation) error
}

// Service orquestra a coleta: fan-out concorrente para os adapters, barreira
// de join e depois o pipeline síncrono merge -> override -> assemble.
type Service struct {
	Adapters      []adapter.Adapter
	SourceTimeout time.Duration
	Runs          RunStore // nil = sem auditoria
}

func New(adapters []adapter.Adapter, sourceTimeout time.Duration) *Service {
	return &Service{Adapters: adapters, SourceTimeout: sourceTimeout}
}

// Run executa a coleta para a consulta já normalizada. Cada fonte tem o
// próprio deadline; uma fonte falhar não bloqueia as outras. Cancelamento
// do chamador propaga para os fetches em andamento e o que chegou pela
// metade é descartado junto com o erro da fonte.
func (s *Service) Run(ctx context.Context, q model.SearchQuery, overrides model.Overrides) (*model.Reconciliation, error) {
	inicio := time.Now()
	observability.ColetasTotal.Inc()

	outcomes := s.fanOut(ctx, q)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged, err := reconcile.Merge(outcomes)
	if err != nil {
		return nil, err
	}

	final, aplicados := reconcile.ApplyOverrides(merged.Products, overrides)
	observability.OverridesAplicados.Add(float64(aplicados))

	res := reconcile.Assemble(uuid.New().String(), q, merged.Fontes, final, aplicados, time.Since(inicio))

	if s.Runs != nil {
		// melhor esforço: auditoria não derruba a resposta
		if err := s.Runs.Save(ctx, q.NomeProduto, res); err != nil {
			log.Printf("Erro ao gravar auditoria da run %s: %v", res.RunID, err)
		}
	}
	return res, nil
}

func (s *Service) fanOut(ctx context.Context, q model.SearchQuery) []adapter.Outcome {
	results := make(chan adapter.Outcome, len(s.Adapters))

	for _, a := range s.Adapters {
		go func(a adapter.Adapter) {
			fctx := ctx
			if s.SourceTimeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, s.SourceTimeout)
				defer cancel()
			}

			res, err := a.Fetch(fctx, q)
			if err != nil {
				log.Printf("Erro na fonte %s: %v", a.Source(), err)
				observability.SourceErrors.WithLabelValues(string(a.Source())).Inc()
				results <- adapter.Outcome{Source: a.Source(), Err: err}
				return
			}
			observability.RecordsFetched.WithLabelValues(string(a.Source())).Add(float64(len(res.Records)))
			results <- adapter.Outcome{
				Source:  a.Source(),
				Records: res.Records,
				Skipped: res.Skipped,
			}
		}(a)
	}

	// barreira: a reconciliação só começa com todas as fontes resolvidas
	outcomes := make([]adapter.Outcome, 0, len(s.Adapters))
	for range s.Adapters {
		outcomes = append(outcomes, <-results)
	}
	return outcomes
}
