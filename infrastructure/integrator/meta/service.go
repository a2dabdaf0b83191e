package meta

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// Fetcher expõe a coleta de campanhas, conjuntos de anúncios e insights
// já normalizados para o restante da aplicação
type Fetcher interface {
	FetchCampaigns(ctx context.Context) ([]domain.Campaign, error)
	FetchAdSets(ctx context.Context, campaignID string) ([]domain.AdSet, error)
	FetchInsights(ctx context.Context, adSets []domain.AdSet, filters *domain.InsightFilters) ([]domain.InsightRecord, int, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchCampaigns busca as campanhas ativas da conta e aplica a lista de permitidas
func (s *MetaIntegrator) FetchCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rawCampaigns, err := s.Client.GetCampaignsByAccountID(ctx, s.cfg.Meta.AdAccountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": s.cfg.Meta.AdAccountID,
			"error":      err.Error(),
		}).Error("insights: falha ao buscar campanhas da conta")
		return nil, err
	}

	allowed := make(map[string]bool, len(s.cfg.Meta.CampaignAllowlist))
	for _, id := range s.cfg.Meta.CampaignAllowlist {
		allowed[id] = true
	}

	campaigns := make([]domain.Campaign, 0, len(rawCampaigns))
	for _, raw := range rawCampaigns {
		// Lista vazia significa acompanhar todas as campanhas ativas
		if len(allowed) > 0 && !allowed[raw.ID] {
			continue
		}

		campaigns = append(campaigns, domain.Campaign{
			ID:        raw.ID,
			Name:      raw.Name,
			Status:    raw.Status,
			Objective: raw.Objective,
		})
	}

	logrus.WithFields(logrus.Fields{
		"total_campaigns":   len(rawCampaigns),
		"allowed_campaigns": len(campaigns),
	}).Info("insights: campanhas obtidas com sucesso")

	return campaigns, nil
}

// FetchAdSets busca os conjuntos de anúncios de uma campanha
func (s *MetaIntegrator) FetchAdSets(ctx context.Context, campaignID string) ([]domain.AdSet, error) {
	rawAdSets, err := s.Client.GetAdSetsByCampaignID(ctx, campaignID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("insights: falha ao buscar conjuntos de anúncios da campanha")
		return nil, err
	}

	adSets := make([]domain.AdSet, 0, len(rawAdSets))
	for _, raw := range rawAdSets {
		adSets = append(adSets, domain.AdSet{
			ID:         raw.ID,
			CampaignID: raw.CampaignID,
			Name:       raw.Name,
			Status:     raw.Status,
		})
	}

	return adSets, nil
}

// FetchInsights busca e normaliza os insights de todos os conjuntos de anúncios
// em paralelo limitado. Registros malformados são pulados e contados; falhas de
// busca encerram a operação. Retorna os registros, o total de pulados e o erro.
func (s *MetaIntegrator) FetchInsights(ctx context.Context, adSets []domain.AdSet, filters *domain.InsightFilters) ([]domain.InsightRecord, int, error) {
	if err := filters.Validate(s.cfg.Meta.MaxLookbackDays); err != nil {
		return nil, 0, err
	}

	semaphore := make(chan struct{}, s.cfg.Meta.MaxConcurrentFetches)
	var wg sync.WaitGroup

	var mu sync.Mutex
	records := make([]domain.InsightRecord, 0)
	skipped := 0
	var fetchErr error

	for _, adSet := range adSets {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(as domain.AdSet) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			mu.Lock()
			aborted := fetchErr != nil
			mu.Unlock()
			if aborted {
				return
			}

			rows, err := s.Client.GetInsightsByAdSetID(ctx, as.ID, filters)
			if err != nil {
				mu.Lock()
				if fetchErr == nil {
					fetchErr = err
				}
				mu.Unlock()

				logrus.WithFields(logrus.Fields{
					"ad_set_id": as.ID,
					"error":     err.Error(),
				}).Error("insights: falha ao buscar insights do conjunto de anúncios")
				return
			}

			for i, row := range rows {
				record, err := NormalizeInsightRow(row, i)
				if err != nil {
					mu.Lock()
					skipped++
					mu.Unlock()

					logrus.WithFields(logrus.Fields{
						"ad_set_id": as.ID,
						"error":     err.Error(),
					}).Warn("insights: registro malformado pulado na normalização")
					continue
				}

				// Linhas sem nome herdam o nome do conjunto de anúncios
				if record.EntityName == "" {
					record.EntityName = as.Name
				}

				mu.Lock()
				records = append(records, *record)
				mu.Unlock()
			}
		}(adSet)
	}

	wg.Wait()

	if fetchErr != nil {
		return nil, skipped, fetchErr
	}

	logrus.WithFields(logrus.Fields{
		"ad_sets":    len(adSets),
		"records":    len(records),
		"skipped":    skipped,
		"start_date": filters.StartDate.Format("2006-01-02"),
		"end_date":   filters.EndDate.Format("2006-01-02"),
	}).Info("insights: coleta de insights concluída")

	return records, skipped, nil
}
