package reward

import (
	"fmt"
	"strings"
)

// NoDebtStatement is the sentinel returned when nothing is owed.
const NoDebtStatement = "Долгов по наградам нет ✅"

// VIPGrantedStatus is the status line shown when the VIP milestone is issued.
const VIPGrantedStatus = "VIP-статус выдан 👑"

// Statement renders the debt breakdown as the message an admin sees.
func (d Debt) Statement() string {
	if d.Empty() {
		return NoDebtStatement
	}

	var b strings.Builder
	b.WriteString("💸 Задолженность по наградам:\n")
	for _, m := range d.Milestones {
		fmt.Fprintf(&b, "• %d приглашений — «%s»: %d цветков", m.Threshold, m.Label, m.Flowers)
		if m.Money > 0 {
			fmt.Fprintf(&b, " + %d денег", m.Money)
		}
		if m.VIP {
			b.WriteString(" + VIP-статус")
		}
		b.WriteString("\n")
	}
	if d.ExtraInvites > 0 {
		fmt.Fprintf(&b, "• Доп. приглашения сверх %d: %d × %d = %d денег\n",
			ExtraAfter, d.ExtraInvites, int64(ExtraInviteMoney), d.ExtraMoney())
	}
	fmt.Fprintf(&b, "\nИтого: %d цветков, %d денег", d.TotalFlowers(), d.TotalMoney())
	if d.VIP() {
		b.WriteString(" и VIP-статус")
	}
	return b.String()
}

// Statement renders the issuance result; a no-op transition says so explicitly.
func (i Issuance) Statement() string {
	if i.Empty() {
		return "Новых наград нет, всё уже выдано ✅"
	}

	var b strings.Builder
	b.WriteString("✅ Отмечено как выданное:\n")
	for _, m := range i.NewMilestones {
		fmt.Fprintf(&b, "• «%s» (%d приглашений)\n", m.Label, m.Threshold)
	}
	if i.NewExtraInvites > 0 {
		fmt.Fprintf(&b, "• Доп. приглашения: %d × %d = %d денег\n",
			i.NewExtraInvites, int64(ExtraInviteMoney), i.NewExtraMoney())
	}
	if i.VIPGranted() {
		fmt.Fprintf(&b, "• %s\n", VIPGrantedStatus)
	}
	fmt.Fprintf(&b, "\nВсего выдано: %d цветков, %d денег (+%d денег за доп. приглашения)",
		i.TotalFlowers(), i.TotalMoney(), i.ExtraPaidTotal())
	return b.String()
}
