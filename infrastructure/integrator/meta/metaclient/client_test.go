package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

func newTestClient(serverURL string) *MetaClient {
	cfg := &config.Config{
		Meta: config.Meta{
			URL:                   serverURL,
			AccessToken:           "test_token",
			AdAccountID:           "123",
			RateLimitMaxRequests:  100,
			RateLimitWindowSec:    60,
			MaxRetries:            3,
			BackoffBaseSeconds:    0, // Sem espera entre tentativas no teste
			RequestTimeoutSeconds: 5,
			MaxLookbackDays:       30,
		},
	}

	return NewClient(cfg).(*MetaClient)
}

func TestMetaClient_GetCampaignsByAccountID(t *testing.T) {
	t.Run("Deve seguir os cursores de paginação até o fim", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/act_123/campaigns", r.URL.Path)
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))

			if atomic.AddInt32(&calls, 1) == 1 {
				assert.Empty(t, r.URL.Query().Get("after"))
				w.Write([]byte(`{
					"data": [
						{"id": "C001", "name": "Campanha 1", "status": "ACTIVE", "objective": "OUTCOME_SALES"},
						{"id": "C002", "name": "Campanha 2", "status": "ACTIVE", "objective": "OUTCOME_TRAFFIC"}
					],
					"paging": {"cursors": {"after": "cursor123"}}
				}`))
				return
			}

			assert.Equal(t, "cursor123", r.URL.Query().Get("after"))
			w.Write([]byte(`{
				"data": [{"id": "C003", "name": "Campanha 3", "status": "ACTIVE", "objective": "OUTCOME_LEADS"}],
				"paging": {"cursors": {}}
			}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		campaigns, err := client.GetCampaignsByAccountID(context.Background(), "123")

		assert.NoError(t, err)
		assert.Len(t, campaigns, 3)
		assert.Equal(t, "C001", campaigns[0].ID)
		assert.Equal(t, "C003", campaigns[2].ID)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Deve retentar em 429 e concluir quando a API se recupera", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 2 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"data": [{"id": "C001", "name": "Campanha 1"}], "paging": {"cursors": {}}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		campaigns, err := client.GetCampaignsByAccountID(context.Background(), "123")

		assert.NoError(t, err)
		assert.Len(t, campaigns, 1)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("Rate limit persistente deve esgotar as tentativas com erro transitório", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		campaigns, err := client.GetCampaignsByAccountID(context.Background(), "123")

		assert.Nil(t, campaigns)
		assert.True(t, domain.IsTransientFetchError(err))

		var transientErr *domain.TransientFetchError
		assert.ErrorAs(t, err, &transientErr)
		assert.Equal(t, 3, transientErr.Attempts)
		assert.Equal(t, http.StatusTooManyRequests, transientErr.StatusCode)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("Erro 4xx não recuperável deve falhar sem retry", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": {"message": "Token de acesso inválido", "code": 190}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		campaigns, err := client.GetCampaignsByAccountID(context.Background(), "123")

		assert.Nil(t, campaigns)
		assert.True(t, domain.IsPermanentFetchError(err))

		var permanentErr *domain.PermanentFetchError
		assert.ErrorAs(t, err, &permanentErr)
		assert.Equal(t, http.StatusForbidden, permanentErr.StatusCode)
		assert.Equal(t, "Token de acesso inválido", permanentErr.Message)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Erro 5xx deve ser tratado como transitório", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetCampaignsByAccountID(context.Background(), "123")

		assert.True(t, domain.IsTransientFetchError(err))
	})
}

func TestMetaClient_GetInsightsByAdSetID(t *testing.T) {
	start := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	end := start

	t.Run("Deve enviar o intervalo de datas e decodificar as linhas diárias", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/AS001/insights", r.URL.Path)
			assert.Equal(t, `{"since":"2025-08-30","until":"2025-08-30"}`, r.URL.Query().Get("time_range"))
			assert.Equal(t, "1", r.URL.Query().Get("time_increment"))

			w.Write([]byte(`{
				"data": [{
					"adset_id": "AS001",
					"adset_name": "Conjunto A",
					"objective": "OUTCOME_SALES",
					"impressions": "1000",
					"clicks": "50",
					"spend": "100.50",
					"actions": [{"action_type": "purchase", "value": "10"}],
					"date_start": "2025-08-30",
					"date_stop": "2025-08-30"
				}],
				"paging": {"cursors": {}}
			}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		rows, err := client.GetInsightsByAdSetID(context.Background(), "AS001", &domain.InsightFilters{
			StartDate: &start,
			EndDate:   &end,
		})

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "AS001", rows[0].AdSetID)
		assert.Equal(t, "1000", rows[0].Impressions)
	})

	t.Run("Intervalo inválido deve falhar antes de qualquer requisição", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("nenhuma requisição deveria ser feita")
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		rows, err := client.GetInsightsByAdSetID(context.Background(), "AS001", &domain.InsightFilters{})
		assert.Nil(t, rows)
		assert.Error(t, err)

		// Data inicial posterior à final
		later := start.AddDate(0, 0, 5)
		rows, err = client.GetInsightsByAdSetID(context.Background(), "AS001", &domain.InsightFilters{
			StartDate: &later,
			EndDate:   &start,
		})
		assert.Nil(t, rows)
		assert.Error(t, err)

		// Intervalo além do limite de lookback
		tooOld := start.AddDate(0, 0, -45)
		rows, err = client.GetInsightsByAdSetID(context.Background(), "AS001", &domain.InsightFilters{
			StartDate: &tooOld,
			EndDate:   &start,
		})
		assert.Nil(t, rows)
		assert.Error(t, err)
	})
}
