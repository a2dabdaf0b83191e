package processing

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
	"github.com/vfg2006/campaign-tracker-api/pkg/utils"
)

// Service é o motor de métricas: agrega registros normalizados, deriva
// CTR/CPM/ROAS, calcula o score de eficiência por coorte e a variação diária.
// Todas as operações são determinísticas e sem efeitos colaterais.
type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// BuildMetrics agrega os registros por conjunto de anúncios e deriva as
// métricas comparativas. Divisões por zero resultam em zero, nunca em erro.
func (s *Service) BuildMetrics(records []domain.InsightRecord) []*domain.ProcessedMetric {
	grouped := make(map[string]*domain.ProcessedMetric)

	for _, record := range records {
		metric, ok := grouped[record.EntityID]
		if !ok {
			metric = &domain.ProcessedMetric{
				EntityID:   record.EntityID,
				EntityName: record.EntityName,
			}
			grouped[record.EntityID] = metric
		}

		metric.Impressions += record.Impressions
		metric.Clicks += record.Clicks
		metric.Spend += record.Spend
		metric.Results += record.Results

		if record.Date.After(metric.Date) {
			metric.Date = record.Date
		}
		if metric.EntityName == "" {
			metric.EntityName = record.EntityName
		}
	}

	metrics := make([]*domain.ProcessedMetric, 0, len(grouped))
	for _, metric := range grouped {
		metric.Spend = utils.RoundWithTwoDecimalPlace(metric.Spend)
		metric.ResultsValue = utils.RoundWithTwoDecimalPlace(float64(metric.Results) * s.cfg.Metrics.ResultValue)
		metric.CTR = utils.RoundWithFourDecimalPlace(utils.SafeDivide(float64(metric.Clicks), float64(metric.Impressions)))
		metric.CPM = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(metric.Spend, float64(metric.Impressions)) * 1000)
		metric.ROAS = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(metric.ResultsValue, metric.Spend))

		metrics = append(metrics, metric)
	}

	s.scoreEfficiency(metrics)
	s.rank(metrics)

	logrus.WithFields(logrus.Fields{
		"records":  len(records),
		"entities": len(metrics),
	}).Debug("processing: métricas derivadas com sucesso")

	return metrics
}

// scoreEfficiency calcula o score composto ponderado sobre as métricas
// normalizadas na coorte (min-max). CPM entra invertido: quanto menor, melhor.
func (s *Service) scoreEfficiency(metrics []*domain.ProcessedMetric) {
	if len(metrics) == 0 {
		return
	}

	normROAS := normalizer(metrics, func(m *domain.ProcessedMetric) float64 { return m.ROAS })
	normCTR := normalizer(metrics, func(m *domain.ProcessedMetric) float64 { return m.CTR })
	normCPM := normalizer(metrics, func(m *domain.ProcessedMetric) float64 { return m.CPM })

	for _, metric := range metrics {
		score := s.cfg.Metrics.WeightROAS*normROAS(metric) +
			s.cfg.Metrics.WeightCTR*normCTR(metric) +
			s.cfg.Metrics.WeightCPM*(1-normCPM(metric))

		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}

		metric.EfficiencyScore = utils.RoundWithTwoDecimalPlace(score)
	}
}

// normalizer devolve a função de normalização min-max da métrica na coorte.
// Coorte degenerada (todos iguais) normaliza para 0.5.
func normalizer(metrics []*domain.ProcessedMetric, value func(*domain.ProcessedMetric) float64) func(*domain.ProcessedMetric) float64 {
	min, max := value(metrics[0]), value(metrics[0])
	for _, metric := range metrics[1:] {
		v := value(metric)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		return func(*domain.ProcessedMetric) float64 { return 0.5 }
	}

	return func(m *domain.ProcessedMetric) float64 {
		return (value(m) - min) / (max - min)
	}
}

// rank ordena por score decrescente, desempatando por gasto decrescente e
// por ID crescente, garantindo ordem total reprodutível
func (s *Service) rank(metrics []*domain.ProcessedMetric) {
	sort.Slice(metrics, func(i, j int) bool {
		if metrics[i].EfficiencyScore != metrics[j].EfficiencyScore {
			return metrics[i].EfficiencyScore > metrics[j].EfficiencyScore
		}
		if metrics[i].Spend != metrics[j].Spend {
			return metrics[i].Spend > metrics[j].Spend
		}
		return metrics[i].EntityID < metrics[j].EntityID
	})

	for i, metric := range metrics {
		metric.Rank = i + 1
	}
}

// BuildTrends calcula a variação percentual diária de cada métrica
// acompanhada em relação à linha de base do dia anterior. Linha de base
// zero ou ausente marca o ponto como indisponível, nunca como infinito.
func (s *Service) BuildTrends(current []*domain.ProcessedMetric, previous map[string]*domain.ProcessedMetric) []*domain.TrendPoint {
	trends := make([]*domain.TrendPoint, 0, len(current)*4)

	for _, metric := range current {
		prev := previous[metric.EntityID]

		trends = append(trends,
			s.trendPoint(metric, prev, domain.MetricROAS),
			s.trendPoint(metric, prev, domain.MetricSpend),
			s.trendPoint(metric, prev, domain.MetricConversions),
			s.trendPoint(metric, prev, domain.MetricCTR),
		)
	}

	return trends
}

func (s *Service) trendPoint(current, previous *domain.ProcessedMetric, metricName string) *domain.TrendPoint {
	point := &domain.TrendPoint{
		EntityID:   current.EntityID,
		EntityName: current.EntityName,
		Metric:     metricName,
		Date:       current.Date,
		Current:    metricValue(current, metricName),
	}

	if previous == nil {
		point.BaselineUnavailable = true
		return point
	}

	point.Previous = metricValue(previous, metricName)
	if point.Previous == 0 {
		point.BaselineUnavailable = true
		return point
	}

	delta := utils.RoundWithTwoDecimalPlace((point.Current - point.Previous) / point.Previous * 100)
	point.DeltaPct = &delta

	return point
}

func metricValue(metric *domain.ProcessedMetric, metricName string) float64 {
	switch metricName {
	case domain.MetricROAS:
		return metric.ROAS
	case domain.MetricSpend:
		return metric.Spend
	case domain.MetricConversions:
		return float64(metric.Results)
	case domain.MetricCTR:
		return metric.CTR
	}
	return 0
}

// BuildWeeklySummaries consolida os snapshots diários dos últimos 7 dias
// por conjunto de anúncios, com as médias recalculadas sobre os totais
func (s *Service) BuildWeeklySummaries(snapshots []*domain.InsightSnapshot) []*domain.WeeklySummary {
	grouped := make(map[string]*domain.WeeklySummary)

	for _, snapshot := range snapshots {
		if snapshot.Metrics == nil {
			continue
		}

		summary, ok := grouped[snapshot.EntityID]
		if !ok {
			summary = &domain.WeeklySummary{
				EntityID:   snapshot.EntityID,
				EntityName: snapshot.EntityName,
				WeekStart:  snapshot.Date,
				WeekEnd:    snapshot.Date,
			}
			grouped[snapshot.EntityID] = summary
		}

		summary.TotalSpend += snapshot.Metrics.Spend
		summary.TotalImpressions += snapshot.Metrics.Impressions
		summary.TotalClicks += snapshot.Metrics.Clicks
		summary.TotalResults += snapshot.Metrics.Results

		if snapshot.Date.Before(summary.WeekStart) {
			summary.WeekStart = snapshot.Date
		}
		if snapshot.Date.After(summary.WeekEnd) {
			summary.WeekEnd = snapshot.Date
		}
	}

	summaries := make([]*domain.WeeklySummary, 0, len(grouped))
	for _, summary := range grouped {
		summary.TotalSpend = utils.RoundWithTwoDecimalPlace(summary.TotalSpend)
		summary.AvgCTR = utils.RoundWithFourDecimalPlace(utils.SafeDivide(float64(summary.TotalClicks), float64(summary.TotalImpressions)))
		summary.AvgCPM = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(summary.TotalSpend, float64(summary.TotalImpressions)) * 1000)

		resultsValue := float64(summary.TotalResults) * s.cfg.Metrics.ResultValue
		summary.AvgROAS = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(resultsValue, summary.TotalSpend))

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EntityID < summaries[j].EntityID
	})

	return summaries
}

// PreviousDayBaseline monta o mapa de linha de base a partir dos snapshots
// do dia anterior à data de referência
func PreviousDayBaseline(snapshots []*domain.InsightSnapshot, reference time.Time) map[string]*domain.ProcessedMetric {
	previousDay := reference.AddDate(0, 0, -1).Format(time.DateOnly)

	baseline := make(map[string]*domain.ProcessedMetric)
	for _, snapshot := range snapshots {
		if snapshot.Metrics == nil {
			continue
		}
		if snapshot.Date.Format(time.DateOnly) == previousDay {
			baseline[snapshot.EntityID] = snapshot.Metrics
		}
	}

	return baseline
}
