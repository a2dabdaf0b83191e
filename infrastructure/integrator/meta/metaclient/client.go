package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	GetAdSetsByCampaignID(ctx context.Context, campaignID string) ([]metadomain.AdSet, error)
	GetInsightsByAdSetID(ctx context.Context, adSetID string, filters *domain.InsightFilters) ([]metadomain.InsightRow, error)
}

type MetaClient struct {
	Cfg     *config.Config
	http    *resty.Client
	limiter *RateLimiter
}

func NewClient(cfg *config.Config) Client {
	httpClient := resty.New()
	httpClient.SetTimeout(time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second)

	limiter := NewRateLimiter(
		cfg.Meta.RateLimitMaxRequests,
		time.Duration(cfg.Meta.RateLimitWindowSec)*time.Second,
	)

	return &MetaClient{
		Cfg:     cfg,
		http:    httpClient,
		limiter: limiter,
	}
}

// doGet executa uma requisição GET com rate limit proativo e retry com
// backoff exponencial. Erros 429 e 5xx são tratados como transitórios;
// os demais 4xx encerram imediatamente.
func (c *MetaClient) doGet(ctx context.Context, operation, endpoint string, params url.Values) ([]byte, error) {
	backoff := time.Duration(c.Cfg.Meta.BackoffBaseSeconds) * time.Second

	var lastStatus int
	var lastErr error

	for attempt := 1; attempt <= c.Cfg.Meta.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParamsFromValues(params).
			Get(endpoint)

		switch {
		case err != nil:
			lastStatus = 0
			lastErr = err
		case resp.StatusCode() == http.StatusOK:
			return resp.Body(), nil
		case resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500:
			lastStatus = resp.StatusCode()
			lastErr = fmt.Errorf("resposta %d da API do Meta", resp.StatusCode())
		default:
			return nil, &domain.PermanentFetchError{
				Operation:  operation,
				StatusCode: resp.StatusCode(),
				Message:    apiErrorMessage(resp.Body()),
			}
		}

		logrus.WithFields(logrus.Fields{
			"operation":   operation,
			"attempt":     attempt,
			"max_retries": c.Cfg.Meta.MaxRetries,
			"status":      lastStatus,
			"error":       lastErr.Error(),
		}).Warn("Falha na requisição à API do Meta, aguardando retry")

		if attempt < c.Cfg.Meta.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return nil, &domain.TransientFetchError{
		Operation:  operation,
		StatusCode: lastStatus,
		Attempts:   c.Cfg.Meta.MaxRetries,
		Err:        lastErr,
	}
}

// apiErrorMessage extrai a mensagem do envelope de erro da API
func apiErrorMessage(body []byte) string {
	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return string(body)
	}
	return errResp.Error.Message
}
