package domain

// LineItem references a catalog product by ID only. Prices are never stored
// on the cart side; they are read from the catalog when a total is computed.
type LineItem struct {
	ProductID string
	Quantity  int
}
