package repository

import "time"

type CheckQuotaOptions struct {
	Key string
	// Quota is the daily limit. Nil means unlimited; usage is still counted.
	Quota    *int64
	ExpireAt time.Time
}
