package redisx

import "time"

const (
	// Token sesi login: auth:token:{token} -> {"uid": "...", "email": "..."}
	KeyAuthToken = "auth:token:%s"

	// Channel pub/sub event auth per token: auth:events:{token} -> signed_in | signed_out
	KeyAuthEvents = "auth:events:%s"

	// Cache statistik dashboard admin.
	KeyStatistik = "statistik:dashboard"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLDedup = 48 * time.Hour
)
