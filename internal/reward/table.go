package reward

// Milestone is one row of the static reward table. Money and VIP are zero for
// every threshold except the last one.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
	Flowers   int64  `json:"flowers"`
	Money     int64  `json:"money"`
	VIP       bool   `json:"vip"`
}

const (
	// ExtraAfter is the highest milestone; every invite beyond it pays
	// ExtraInviteMoney, tracked by a high-water-mark counter.
	ExtraAfter       = 20
	ExtraInviteMoney = 100_000
)

var milestones = []Milestone{
	{Threshold: 3, Label: "Коммуникативный", Flowers: 150},
	{Threshold: 6, Label: "Сетевой магнит", Flowers: 300},
	{Threshold: 9, Label: "Мастер связей", Flowers: 450},
	{Threshold: 12, Label: "Проводник", Flowers: 600},
	{Threshold: 15, Label: "Социальная Легенда", Flowers: 750},
	{Threshold: 20, Label: "Работорговец", Flowers: 1000, Money: 1_700_000, VIP: true},
}

// Milestones returns the reward table ordered by ascending threshold.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}
