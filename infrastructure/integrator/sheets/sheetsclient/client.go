package sheetsclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	sheetsdomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ReadRange(ctx context.Context, rangeA1 string) ([][]string, error)
	UpdateRange(ctx context.Context, rangeA1 string, values [][]any) error
	AppendRows(ctx context.Context, rangeA1 string, values [][]any) error
	ApplyColumnFormats(ctx context.Context, sheetName string, rowCount int, formats []sheetsdomain.ColumnFormat) error
}

type SheetsClient struct {
	Cfg  *config.Config
	http *resty.Client

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewClient(cfg *config.Config) Client {
	httpClient := resty.New()
	httpClient.SetTimeout(time.Duration(cfg.Sheets.RequestTimeoutSeconds) * time.Second)
	httpClient.SetAuthToken(cfg.Sheets.AccessToken)

	return &SheetsClient{
		Cfg:      cfg,
		http:     httpClient,
		sheetIDs: make(map[string]int64),
	}
}

// ReadRange lê um intervalo A1 e retorna as células como texto
func (c *SheetsClient) ReadRange(ctx context.Context, rangeA1 string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.Cfg.Sheets.BaseURL, c.Cfg.Sheets.SpreadsheetID, rangeA1)

	resp, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler intervalo da planilha")
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("resposta %d ao ler intervalo %s", resp.StatusCode(), rangeA1)
	}

	var valueRange sheetsdomain.ValueRange
	if err := json.Unmarshal(resp.Body(), &valueRange); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar valores da planilha")
	}

	rows := make([][]string, 0, len(valueRange.Values))
	for _, row := range valueRange.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// UpdateRange sobrescreve um intervalo A1 com os valores informados
func (c *SheetsClient) UpdateRange(ctx context.Context, rangeA1 string, values [][]any) error {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.Cfg.Sheets.BaseURL, c.Cfg.Sheets.SpreadsheetID, rangeA1)

	body, err := json.Marshal(sheetsdomain.ValueRange{Values: values})
	if err != nil {
		return errors.Wrap(err, "erro ao serializar valores da planilha")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "USER_ENTERED").
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(endpoint)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar intervalo da planilha")
	}

	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("resposta %d ao atualizar intervalo %s", resp.StatusCode(), rangeA1)
	}

	return nil
}

// AppendRows acrescenta linhas após a última linha preenchida do intervalo
func (c *SheetsClient) AppendRows(ctx context.Context, rangeA1 string, values [][]any) error {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append",
		c.Cfg.Sheets.BaseURL, c.Cfg.Sheets.SpreadsheetID, rangeA1)

	body, err := json.Marshal(sheetsdomain.ValueRange{Values: values})
	if err != nil {
		return errors.Wrap(err, "erro ao serializar valores da planilha")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "USER_ENTERED").
		SetQueryParam("insertDataOption", "INSERT_ROWS").
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return errors.Wrap(err, "erro ao acrescentar linhas na planilha")
	}

	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("resposta %d ao acrescentar linhas em %s", resp.StatusCode(), rangeA1)
	}

	return nil
}

// ApplyColumnFormats reaplica os padrões numéricos por coluna via batchUpdate
func (c *SheetsClient) ApplyColumnFormats(ctx context.Context, sheetName string, rowCount int, formats []sheetsdomain.ColumnFormat) error {
	sheetID, err := c.getSheetID(ctx, sheetName)
	if err != nil {
		return err
	}

	requests := make([]map[string]any, 0, len(formats))
	for _, format := range formats {
		requests = append(requests, map[string]any{
			"repeatCell": map[string]any{
				"range": map[string]any{
					"sheetId":          sheetID,
					"startRowIndex":    1, // Preserva o cabeçalho
					"endRowIndex":      rowCount,
					"startColumnIndex": format.Column,
					"endColumnIndex":   format.Column + 1,
				},
				"cell": map[string]any{
					"userEnteredFormat": map[string]any{
						"numberFormat": map[string]any{
							"type":    "NUMBER",
							"pattern": format.Pattern,
						},
					},
				},
				"fields": "userEnteredFormat.numberFormat",
			},
		})
	}

	body, err := json.Marshal(map[string]any{"requests": requests})
	if err != nil {
		return errors.Wrap(err, "erro ao serializar requisição de formatos")
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/%s:batchUpdate",
		c.Cfg.Sheets.BaseURL, c.Cfg.Sheets.SpreadsheetID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return errors.Wrap(err, "erro ao aplicar formatos de coluna")
	}

	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("resposta %d ao aplicar formatos na aba %s", resp.StatusCode(), sheetName)
	}

	return nil
}

// getSheetID resolve o ID numérico de uma aba a partir do título, com cache
func (c *SheetsClient) getSheetID(ctx context.Context, sheetName string) (int64, error) {
	c.mu.Lock()
	if id, ok := c.sheetIDs[sheetName]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	endpoint := fmt.Sprintf("%s/spreadsheets/%s",
		c.Cfg.Sheets.BaseURL, c.Cfg.Sheets.SpreadsheetID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("fields", "sheets.properties").
		Get(endpoint)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao buscar metadados da planilha")
	}

	if resp.StatusCode() != http.StatusOK {
		return 0, errors.Errorf("resposta %d ao buscar metadados da planilha", resp.StatusCode())
	}

	var metadata sheetsdomain.SpreadsheetMetadata
	if err := json.Unmarshal(resp.Body(), &metadata); err != nil {
		return 0, errors.Wrap(err, "erro ao decodificar metadados da planilha")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sheet := range metadata.Sheets {
		c.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetID
	}

	id, ok := c.sheetIDs[sheetName]
	if !ok {
		return 0, errors.Errorf("aba %q não encontrada na planilha", sheetName)
	}

	return id, nil
}
