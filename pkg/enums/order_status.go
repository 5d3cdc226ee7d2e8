package enums

// OrderStatus tracks the lifecycle of a placed order. With payment stubbed the
// only transition today is placed, kept as an enum so later states slot in.
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}
