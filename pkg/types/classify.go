package types

// ClassifyValueInput is the input for classify_value.
type ClassifyValueInput struct {
	Value any `json:"value" jsonschema:"Any JSON value"`
}

// ClassifyValueOutput is the output of classify_value.
type ClassifyValueOutput struct {
	Type     string `json:"type"`
	Priority int    `json:"priority"` // Position in the tag priority order
}
