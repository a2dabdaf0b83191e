package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsRateLimited verifica se o erro indica limite de requisições atingido.
// Os códigos 4, 17, 32 e 613 representam throttling nas respostas da API do Meta.
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613:
		return true
	}
	return false
}
