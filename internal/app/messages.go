package app

import "time"

// TickMsg triggers a frame update.
type TickMsg time.Time

// EvictMsg triggers beacon eviction.
type EvictMsg time.Time
