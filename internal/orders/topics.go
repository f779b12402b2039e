package orders

const (
	TopicOrderAdded      = "cart.order.added"
	TopicOrderRemoved    = "cart.order.removed"
	TopicQuantityUpdated = "order.quantity.updated"
)

// Partition key = cart_id, so all events touching one cart keep their
// order.
func PartitionKey(cartID string) []byte { return []byte(cartID) }
