package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldbook/internal/domains/field/model"
)

func intPtr(v int) *int {
	return &v
}

func TestField_Quota_VariantSelection(t *testing.T) {
	tests := []struct {
		name        string
		field       model.Field
		wantTracked bool
		wantTotal   int
	}{
		{
			name:        "subsidised field never tracks quota",
			field:       model.Field{FieldType: model.TypeSubsidised, QuotaTotal: intPtr(10), QuotaRemaining: intPtr(10)},
			wantTracked: false,
		},
		{
			name:        "international field never tracks quota",
			field:       model.Field{FieldType: model.TypeInternational},
			wantTracked: false,
		},
		{
			name:        "diy leased field without quota columns",
			field:       model.Field{FieldType: model.TypeDIYLeased},
			wantTracked: false,
		},
		{
			name: "diy leased field with scalar quota",
			field: model.Field{
				FieldType:      model.TypeDIYLeased,
				QuotaTotal:     intPtr(20),
				QuotaRemaining: intPtr(15),
			},
			wantTracked: true,
			wantTotal:   20,
		},
		{
			name: "species list wins over scalar columns",
			field: model.Field{
				FieldType:      model.TypeDIYLeased,
				QuotaTotal:     intPtr(99),
				QuotaRemaining: intPtr(99),
				QuotaSpecies: model.SpeciesQuotaList{
					{Species: "red deer", Total: 5, Remaining: 3},
					{Species: "roe deer", Total: 4, Remaining: 4},
				},
			},
			wantTracked: true,
			wantTotal:   9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quota := tt.field.Quota()

			assert.Equal(t, tt.wantTracked, quota.Tracked())

			if tt.wantTracked {
				assert.Equal(t, tt.wantTotal, quota.Total())
			}
		})
	}
}

func TestScalarQuota_Deplete(t *testing.T) {
	tests := []struct {
		name          string
		remaining     int
		harvested     int
		wantRemaining int
		wantExhausted bool
	}{
		{
			name:          "partial depletion",
			remaining:     10,
			harvested:     3,
			wantRemaining: 7,
		},
		{
			name:          "exact depletion exhausts",
			remaining:     3,
			harvested:     3,
			wantRemaining: 0,
			wantExhausted: true,
		},
		{
			name:          "over-harvest clamps at zero",
			remaining:     2,
			harvested:     5,
			wantRemaining: 0,
			wantExhausted: true,
		},
		{
			name:          "zero harvest leaves quota untouched",
			remaining:     10,
			harvested:     0,
			wantRemaining: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quota := &model.ScalarQuota{TotalCount: 10, RemainingCount: tt.remaining}

			quota.Deplete(tt.harvested, nil)

			assert.Equal(t, tt.wantRemaining, quota.Remaining())
			assert.Equal(t, tt.wantExhausted, quota.Exhausted())
		})
	}
}

func TestSpeciesQuota_Deplete(t *testing.T) {
	quota := &model.SpeciesQuota{
		Entries: model.SpeciesQuotaList{
			{Species: "red deer", Total: 5, Remaining: 2},
			{Species: "roe deer", Total: 4, Remaining: 4},
		},
	}

	quota.Deplete(4, []model.HarvestCount{
		{Species: "red deer", Quantity: 3},
		{Species: "roe deer", Quantity: 1},
		{Species: "wild boar", Quantity: 2},
	})

	assert.Equal(t, 0, quota.Entries[0].Remaining, "red deer clamps at zero")
	assert.Equal(t, 3, quota.Entries[1].Remaining)
	assert.False(t, quota.Exhausted())

	quota.Deplete(3, []model.HarvestCount{{Species: "roe deer", Quantity: 3}})

	assert.True(t, quota.Exhausted())
}

func TestSpeciesQuota_Exhausted_EmptyList(t *testing.T) {
	quota := &model.SpeciesQuota{}

	assert.False(t, quota.Exhausted())
}

func TestNoQuota(t *testing.T) {
	quota := model.NoQuota{}

	quota.Deplete(100, nil)

	assert.False(t, quota.Tracked())
	assert.False(t, quota.Exhausted())
	assert.Equal(t, 0, quota.Remaining())
}

func TestField_ApplyQuota(t *testing.T) {
	t.Run("scalar quota writes remaining back", func(t *testing.T) {
		field := model.Field{
			FieldType:      model.TypeDIYLeased,
			QuotaTotal:     intPtr(10),
			QuotaRemaining: intPtr(10),
		}

		quota := field.Quota()
		quota.Deplete(4, nil)
		field.ApplyQuota(quota)

		assert.NotNil(t, field.QuotaRemaining)
		assert.Equal(t, 6, *field.QuotaRemaining)
		assert.Equal(t, 10, *field.QuotaTotal)
	})

	t.Run("species quota writes entries back", func(t *testing.T) {
		field := model.Field{
			FieldType: model.TypeDIYLeased,
			QuotaSpecies: model.SpeciesQuotaList{
				{Species: "red deer", Total: 5, Remaining: 5},
			},
		}

		quota := field.Quota()
		quota.Deplete(2, []model.HarvestCount{{Species: "red deer", Quantity: 2}})
		field.ApplyQuota(quota)

		assert.Equal(t, 3, field.QuotaSpecies[0].Remaining)
	})

	t.Run("no quota leaves columns untouched", func(t *testing.T) {
		field := model.Field{FieldType: model.TypeSubsidised}

		field.ApplyQuota(field.Quota())

		assert.Nil(t, field.QuotaTotal)
		assert.Nil(t, field.QuotaRemaining)
	})
}
