package model

import (
	"database/sql/driver"
	"encoding/json"
)

// HarvestCount is a per-species harvest tally reported at the end of a hunt.
type HarvestCount struct {
	Species  string `json:"species"`
	Quantity int    `json:"quantity"`
}

type SpeciesQuotaEntry struct {
	Species   string `json:"species"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
}

// SpeciesQuotaList is a JSONB list of per-species quota entries.
type SpeciesQuotaList []SpeciesQuotaEntry

func (s SpeciesQuotaList) Value() (driver.Value, error) {
	if s == nil {
		s = SpeciesQuotaList{}
	}

	return json.Marshal(s) //nolint:wrapcheck
}

func (s *SpeciesQuotaList) Scan(src any) error {
	if src == nil {
		*s = nil

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return errInvalidJSONBSource
	}

	return json.Unmarshal(raw, s) //nolint:wrapcheck
}

// Quota is the harvest-quota capability of a field. Exactly one variant applies
// at a time: SpeciesQuota when a per-species list is configured, ScalarQuota
// when only the total/remaining pair is set, NoQuota for fields whose type does
// not track quota at all. Remaining never drops below zero.
type Quota interface {
	Tracked() bool
	Total() int
	Remaining() int
	Exhausted() bool
	Deplete(totalHarvested int, bySpecies []HarvestCount)
}

type NoQuota struct{}

func (NoQuota) Tracked() bool               { return false }
func (NoQuota) Total() int                  { return 0 }
func (NoQuota) Remaining() int              { return 0 }
func (NoQuota) Exhausted() bool             { return false }
func (NoQuota) Deplete(int, []HarvestCount) {}

type ScalarQuota struct {
	TotalCount     int
	RemainingCount int
}

func (q *ScalarQuota) Tracked() bool   { return true }
func (q *ScalarQuota) Total() int      { return q.TotalCount }
func (q *ScalarQuota) Remaining() int  { return q.RemainingCount }
func (q *ScalarQuota) Exhausted() bool { return q.RemainingCount <= 0 }

func (q *ScalarQuota) Deplete(totalHarvested int, _ []HarvestCount) {
	q.RemainingCount = max(0, q.RemainingCount-totalHarvested)
}

type SpeciesQuota struct {
	Entries SpeciesQuotaList
}

func (q *SpeciesQuota) Tracked() bool { return true }

func (q *SpeciesQuota) Total() int {
	total := 0
	for _, entry := range q.Entries {
		total += entry.Total
	}

	return total
}

func (q *SpeciesQuota) Remaining() int {
	remaining := 0
	for _, entry := range q.Entries {
		remaining += entry.Remaining
	}

	return remaining
}

func (q *SpeciesQuota) Exhausted() bool {
	if len(q.Entries) == 0 {
		return false
	}

	for _, entry := range q.Entries {
		if entry.Remaining > 0 {
			return false
		}
	}

	return true
}

func (q *SpeciesQuota) Deplete(_ int, bySpecies []HarvestCount) {
	for _, harvest := range bySpecies {
		for i := range q.Entries {
			if q.Entries[i].Species == harvest.Species {
				q.Entries[i].Remaining = max(0, q.Entries[i].Remaining-harvest.Quantity)
			}
		}
	}
}

// Quota picks the variant the field's columns describe.
func (f *Field) Quota() Quota {
	if f.FieldType != TypeDIYLeased {
		return NoQuota{}
	}

	if len(f.QuotaSpecies) > 0 {
		return &SpeciesQuota{Entries: f.QuotaSpecies}
	}

	if f.QuotaTotal != nil || f.QuotaRemaining != nil {
		quota := &ScalarQuota{}
		if f.QuotaTotal != nil {
			quota.TotalCount = *f.QuotaTotal
		}

		if f.QuotaRemaining != nil {
			quota.RemainingCount = *f.QuotaRemaining
		}

		return quota
	}

	return NoQuota{}
}

// ApplyQuota writes a depleted variant back onto the field's quota columns.
func (f *Field) ApplyQuota(quota Quota) {
	switch v := quota.(type) {
	case *SpeciesQuota:
		f.QuotaSpecies = v.Entries
	case *ScalarQuota:
		remaining := v.RemainingCount
		f.QuotaRemaining = &remaining
	}
}
