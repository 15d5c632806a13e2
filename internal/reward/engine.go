// Package reward implements the milestone reward rules: a pure function of an
// inviter's cumulative invite count and their ledger state. Nothing here does
// I/O; persistence of the ledger lives in internal/repository.
package reward

import "kaktovottak/referralhub/internal/model"

// Ledger is the persisted "already issued" state the engine computes against.
type Ledger struct {
	Issued        model.MilestoneSet
	RewardedExtra int64
}

// Debt is the breakdown of rewards earned but not yet marked issued.
type Debt struct {
	Milestones   []Milestone
	ExtraInvites int64
}

func (d Debt) Empty() bool {
	return len(d.Milestones) == 0 && d.ExtraInvites == 0
}

func (d Debt) ExtraMoney() int64 {
	return d.ExtraInvites * ExtraInviteMoney
}

func (d Debt) TotalFlowers() int64 {
	var total int64
	for _, m := range d.Milestones {
		total += m.Flowers
	}
	return total
}

func (d Debt) TotalMoney() int64 {
	total := d.ExtraMoney()
	for _, m := range d.Milestones {
		total += m.Money
	}
	return total
}

func (d Debt) VIP() bool {
	for _, m := range d.Milestones {
		if m.VIP {
			return true
		}
	}
	return false
}

// ComputeDebt derives the outstanding rewards for an inviter with the given
// invite count. Each milestone is checked independently against the issued
// set, so milestones issued out of order never mask a lower one still owed.
// Read-only: the ledger is never mutated.
func ComputeDebt(count int64, ledger Ledger) Debt {
	var d Debt
	for _, m := range milestones {
		if int64(m.Threshold) <= count && !ledger.Issued.Has(m.Threshold) {
			d.Milestones = append(d.Milestones, m)
		}
	}
	if extra := count - ExtraAfter - ledger.RewardedExtra; extra > 0 {
		d.ExtraInvites = extra
	}
	return d
}

// Issuance is the result of advancing the ledger to the given invite count:
// what is newly granted plus the post-transition ledger state.
type Issuance struct {
	NewMilestones   []Milestone
	NewExtraInvites int64

	// Ledger state after the transition.
	Issued        model.MilestoneSet
	RewardedExtra int64
}

// Empty reports a no-op transition: nothing newly granted, ledger unchanged.
func (i Issuance) Empty() bool {
	return len(i.NewMilestones) == 0 && i.NewExtraInvites == 0
}

func (i Issuance) NewExtraMoney() int64 {
	return i.NewExtraInvites * ExtraInviteMoney
}

// NewFlowers sums the flowers granted by this transition alone.
func (i Issuance) NewFlowers() int64 {
	var total int64
	for _, m := range i.NewMilestones {
		total += m.Flowers
	}
	return total
}

// TotalFlowers sums flowers across every issued milestone after the transition.
func (i Issuance) TotalFlowers() int64 {
	var total int64
	for _, m := range milestones {
		if i.Issued.Has(m.Threshold) {
			total += m.Flowers
		}
	}
	return total
}

// TotalMoney sums milestone money across every issued milestone after the
// transition. Extra-invite money is reported separately by ExtraPaidTotal.
func (i Issuance) TotalMoney() int64 {
	var total int64
	for _, m := range milestones {
		if i.Issued.Has(m.Threshold) {
			total += m.Money
		}
	}
	return total
}

// ExtraPaidTotal is all extra-invite money paid across the whole history,
// including this transition.
func (i Issuance) ExtraPaidTotal() int64 {
	return i.RewardedExtra * ExtraInviteMoney
}

// VIPGranted reports whether this transition granted the VIP milestone.
func (i Issuance) VIPGranted() bool {
	for _, m := range i.NewMilestones {
		if m.VIP {
			return true
		}
	}
	return false
}

// PlanIssuance computes the mark-issued transition for an inviter with the
// given invite count. Pure: the caller persists i.Issued / i.RewardedExtra
// atomically iff !i.Empty(). The high-water mark never moves backwards even
// if count somehow shrank.
func PlanIssuance(count int64, ledger Ledger) Issuance {
	i := Issuance{
		Issued:        ledger.Issued,
		RewardedExtra: ledger.RewardedExtra,
	}
	var granted []int
	for _, m := range milestones {
		if int64(m.Threshold) <= count && !ledger.Issued.Has(m.Threshold) {
			i.NewMilestones = append(i.NewMilestones, m)
			granted = append(granted, m.Threshold)
		}
	}
	if len(granted) > 0 {
		i.Issued = ledger.Issued.Union(granted...)
	}
	extraTotal := count - ExtraAfter
	if extraTotal < 0 {
		extraTotal = 0
	}
	if delta := extraTotal - ledger.RewardedExtra; delta > 0 {
		i.NewExtraInvites = delta
		i.RewardedExtra = extraTotal
	}
	return i
}
