package models

// InsightType classifies generated observations by severity.
type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightTip     InsightType = "tip"
	InsightInfo    InsightType = "info"
)

// Insight is a generated observation about spending behavior. Message uses
// positional placeholders ({0}, {1}, ...) resolved against Amounts so the
// presentation layer can apply currency-aware formatting; the engine never
// embeds formatted currency strings.
type Insight struct {
	Type     InsightType `json:"type"`
	Category string      `json:"category,omitempty"`
	Message  string      `json:"message"`
	Amounts  []float64   `json:"amounts,omitempty"`
	Amount   float64     `json:"amount"`
}
