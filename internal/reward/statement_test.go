package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kaktovottak/referralhub/internal/model"
)

func TestDebtStatement(t *testing.T) {
	t.Run("no debt sentinel", func(t *testing.T) {
		assert.Equal(t, NoDebtStatement, ComputeDebt(0, Ledger{}).Statement())
	})

	t.Run("single milestone", func(t *testing.T) {
		s := ComputeDebt(3, Ledger{}).Statement()
		assert.Contains(t, s, "Коммуникативный")
		assert.Contains(t, s, "150 цветков")
		assert.Contains(t, s, "Итого: 150 цветков, 0 денег")
		assert.NotContains(t, s, "VIP")
	})

	t.Run("vip milestone and extras", func(t *testing.T) {
		s := ComputeDebt(22, Ledger{Issued: model.MilestoneSet{3, 6, 9, 12, 15}}).Statement()
		assert.Contains(t, s, "Работорговец")
		assert.Contains(t, s, "1700000 денег")
		assert.Contains(t, s, "VIP-статус")
		assert.Contains(t, s, "2 × 100000 = 200000 денег")
		assert.Contains(t, s, "Итого: 1000 цветков, 1900000 денег")
	})
}

func TestIssuanceStatement(t *testing.T) {
	t.Run("no-op", func(t *testing.T) {
		s := PlanIssuance(2, Ledger{}).Statement()
		assert.Contains(t, s, "уже выдано")
	})

	t.Run("grants listed", func(t *testing.T) {
		s := PlanIssuance(22, Ledger{}).Statement()
		assert.Contains(t, s, "Коммуникативный")
		assert.Contains(t, s, "Работорговец")
		assert.Contains(t, s, VIPGrantedStatus)
		assert.Contains(t, s, "2 × 100000 = 200000 денег")
	})
}
