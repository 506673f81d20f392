package stats

// TDPLedger is the sink the progression engine credits when rank or level
// milestones are reached. The engine only ever credits; spending belongs to
// the attribute training commands.
type TDPLedger interface {
	CreditTDP(amount int)
}

// Pool tracks a character's Training Development Points.
type Pool struct {
	Available int
	Spent     int
}

// CreditTDP adds earned TDP to the spendable balance.
func (p *Pool) CreditTDP(amount int) {
	if amount > 0 {
		p.Available += amount
	}
}

// Spend moves TDP from available to spent. Returns false if the balance
// cannot cover the amount.
func (p *Pool) Spend(amount int) bool {
	if amount < 0 || p.Available < amount {
		return false
	}
	p.Available -= amount
	p.Spent += amount
	return true
}

// Total returns all TDP ever earned.
func (p *Pool) Total() int {
	return p.Available + p.Spent
}
