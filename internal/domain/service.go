package domain

import "github.com/shopspring/decimal"

// BookableService is the catalog view the booking engine needs.
type BookableService struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	IsActive        bool
}

// EffectiveDurationMinutes applies the default when the catalog duration is unset or non-positive.
func (s *BookableService) EffectiveDurationMinutes() int {
	return EffectiveDuration(s.DurationMinutes)
}

// EffectiveDuration returns minutes, or DefaultServiceDurationMinutes when minutes <= 0.
func EffectiveDuration(minutes int) int {
	if minutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return minutes
}

// UniqueIDs drops repeated ids keeping the first-seen order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// OrderServices arranges found services in the order of ids.
// Ids with no matching service are returned in missing.
func OrderServices(ids []int64, found []*BookableService) (ordered []*BookableService, missing []int64) {
	byID := make(map[int64]*BookableService, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	ordered = make([]*BookableService, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ordered = append(ordered, s)
	}
	return ordered, missing
}

// TotalDuration sums effective durations.
func TotalDuration(services []*BookableService) int {
	total := 0
	for _, s := range services {
		total += s.EffectiveDurationMinutes()
	}
	return total
}

// TotalPrice sums catalog prices.
func TotalPrice(services []*BookableService) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}
