package metadomain

// Action representa uma ação contabilizada pela API do Meta
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é a linha diária de insights como retornada pela API do Meta.
// Campos numéricos chegam como string e são convertidos pelo normalizador.
type InsightRow struct {
	AdSetID     string   `json:"adset_id"`
	AdSetName   string   `json:"adset_name"`
	Objective   string   `json:"objective"`
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	Spend       string   `json:"spend"`
	Reach       string   `json:"reach"`
	Frequency   string   `json:"frequency"`
	Actions     []Action `json:"actions"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
}

// Mapeamento de "objective" -> "action_type" usado para extrair resultados
var MetaObjectiveToActionType = map[string]string{
	"LINK_CLICKS":           "link_click",
	"POST_ENGAGEMENT":       "post_engagement",
	"PAGE_LIKES":            "like",
	"VIDEO_VIEWS":           "video_view",
	"LEAD_GENERATION":       "lead",
	"CONVERSIONS":           "offsite_conversion",
	"APP_INSTALLS":          "app_install",
	"PRODUCT_CATALOG_SALES": "offsite_conversion.fb_pixel_purchase",
	"MESSAGES":              "onsite_conversion.messaging_first_reply",
	"OUTCOME_SALES":         "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_LEADS":         "lead",
	"OUTCOME_TRAFFIC":       "link_click",
	"OUTCOME_ENGAGEMENT":    "onsite_conversion.messaging_conversation_started_7d",
}
