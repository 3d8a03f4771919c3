package usage

import (
	"context"

	"codeberg.org/satirist/server/internal/quota"
)

// returned by check-limit and check-usage
type Response struct {
	Success   bool   `json:"success"`
	Allowed   bool   `json:"allowed"`
	Current   int    `json:"current"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

type QuotaChecker interface {
	CheckDailyLimit(ctx context.Context, id quota.Identity) (quota.Status, error)
}
