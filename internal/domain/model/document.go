package model

// Collection names a document collection in the store.
type Collection string

const (
	CollectionOrders    Collection = "orders"
	CollectionUsers     Collection = "users"
	CollectionAddresses Collection = "addresses"
)

// Document is a stored record: an opaque id plus a field bag.
type Document struct {
	ID     string
	Fields map[string]any
}

// Snapshot is the full current content of a collection in store order.
type Snapshot struct {
	Collection Collection
	Documents  []Document
}
