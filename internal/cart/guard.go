package cart

// StockDecision is the outcome of a stock guard check.
type StockDecision int

const (
	StockAllow StockDecision = iota
	StockReject
)

// CheckStock gates a quantity change against the line's advisory stock
// ceiling. An over-limit request is rejected whole, never clamped: the
// operator either gets the full requested quantity or nothing. The ceiling is
// a point-in-time snapshot; the server re-validates at submission time.
func CheckStock(requestedQuantity, stockCeiling int) StockDecision {
	if requestedQuantity > stockCeiling {
		return StockReject
	}
	return StockAllow
}
