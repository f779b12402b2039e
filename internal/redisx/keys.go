package redisx

import "time"

const (
	// Catalog list caches: whole-collection JSON payloads.
	KeyListings    = "catalog:listings"
	KeyRestaurants = "catalog:restaurants"

	// Cart snapshot cache: cart:{cart_id} -> cart JSON.
	KeyCart = "cart:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCatalogCache = 5 * time.Minute
	TTLCartCache    = 1 * time.Minute
	TTLDedup        = 48 * time.Hour
)
