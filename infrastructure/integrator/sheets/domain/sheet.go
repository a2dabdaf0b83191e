package sheetsdomain

// Abas lógicas mantidas na planilha remota
const (
	SheetComparison    = "Comparativo"
	SheetDailyTrend    = "TendenciaDiaria"
	SheetWeeklySummary = "ResumoSemanal"
)

// Padrões de formato numérico aplicados por coluna
const (
	FormatCurrency = "R$ #,##0.00"
	FormatPercent  = "0.00%"
	FormatInteger  = "#,##0"
	FormatDecimal  = "#,##0.00"
	FormatDateTime = "yyyy-mm-dd hh:mm"
)

// ColumnFormat associa uma coluna (índice baseado em zero) a um padrão numérico
type ColumnFormat struct {
	Column  int
	Pattern string
}

// ValueRange é o envelope de leitura e escrita de valores da API de planilhas
type ValueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// SheetProperties identifica uma aba dentro da planilha
type SheetProperties struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
}

// SpreadsheetMetadata é a resposta de metadados da planilha
type SpreadsheetMetadata struct {
	Sheets []struct {
		Properties SheetProperties `json:"properties"`
	} `json:"sheets"`
}
