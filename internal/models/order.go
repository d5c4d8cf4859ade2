package models

// Payload field names, as sent by the calling process.
const (
	FieldEventType    = "event_type"
	FieldProductName  = "product_name"
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unit_price"
	FieldDurationDays = "duration_days"
	FieldSeasonPeriod = "season_period"
	FieldMonth        = "month"
	FieldYear         = "year"
)

// RequiredFields lists every field an order must carry.
var RequiredFields = []string{
	FieldEventType,
	FieldProductName,
	FieldQuantity,
	FieldUnitPrice,
	FieldDurationDays,
	FieldSeasonPeriod,
	FieldMonth,
	FieldYear,
}

// OrderRequest is a decoded order payload. Values are kept as decoded
// (string, json.Number, bool, nil, ...) so presence and type checks happen
// during feature encoding.
type OrderRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// Get returns the raw value of a field and whether it was present.
func (o *OrderRequest) Get(field string) (interface{}, bool) {
	if o == nil || o.Fields == nil {
		return nil, false
	}
	v, ok := o.Fields[field]
	return v, ok
}
