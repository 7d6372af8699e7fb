package shop

// SetOrderIDFunc swaps the order id generator for deterministic tests
// and returns a restore function.
func SetOrderIDFunc(f func() int64) func() {
	prev := orderID
	orderID = f
	return func() { orderID = prev }
}
