package repository

import (
	"campusedge_payments/internal/domain/entities"
	"time"
)

const defaultPaymentsTableName = "payments"

func tableOrDefault(name string) string {
	if name != "" {
		return name
	}
	return defaultPaymentsTableName
}

func statusStrings(statuses []entities.PaymentStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// creationTime is truncated to microseconds, the finest precision every store keeps.
func creationTime(now time.Time) time.Time {
	return now.UTC().Truncate(time.Microsecond)
}
