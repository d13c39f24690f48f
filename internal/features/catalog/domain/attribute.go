package domain

// AttributeValue is a single selectable value of an attribute. Position
// controls display order and is assigned by the backend.
type AttributeValue struct {
	ID       int    `json:"id"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

// Attribute is a product attribute (e.g. color, size) with its ordered
// values.
type Attribute struct {
	ID     int              `json:"id"`
	Name   string           `json:"name"`
	Values []AttributeValue `json:"values"`
}
