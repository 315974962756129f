package networth

import (
	"fmt"
	"math"
	"slices"

	"github.com/etnz/networth/date"
)

// OngoingProject is an investment with a maturity: a deposit, a real estate
// crowdfunding project or a factoring operation.
type OngoingProject struct {
	Name             string        `json:"name"`
	Type             ProductType   `json:"type"`
	Entity           string        `json:"entity"`
	Amount           MonetaryEntry `json:"amount"`
	Value            Decimal       `json:"value"` // Amount in the target currency.
	ROI              Decimal       `json:"roi"`
	Maturity         *date.Date    `json:"maturity,omitempty"`
	ExtendedMaturity *date.Date    `json:"extended_maturity,omitempty"`
	LateInterestRate *Decimal      `json:"late_interest_rate,omitempty"`
}

// Status returns the days status of the project on day today.
func (p OngoingProject) Status(today date.Date) DaysStatus {
	return GetDaysStatus(p.Maturity, p.ExtendedMaturity, today)
}

// OngoingProjects lists the projects of the snapshot, the closest to maturity first.
// Projects without maturity come last.
func OngoingProjects(positions *EntitiesPosition, target string, rates ExchangeRates, today date.Date) []OngoingProject {
	if positions == nil {
		return []OngoingProject{}
	}
	var projects []OngoingProject
	add := func(p OngoingProject) {
		p.Value = p.Amount.To(target, rates)
		projects = append(projects, p)
	}
	for _, key := range positions.Keys() {
		gp := positions.Positions[key]
		entity := gp.Entity.Name
		if entity == "" {
			entity = "Unknown"
		}
		p := gp.Products
		for _, d := range p.Deposits.Entries {
			add(OngoingProject{
				Name:     nameOr(d.Name, "Deposit"),
				Type:     Deposit,
				Entity:   entity,
				Amount:   Money(d.Amount.OrZero(), d.Currency),
				ROI:      d.InterestRate.OrZero(),
				Maturity: d.Maturity,
			})
		}
		for _, re := range p.RealEstateCF.Entries {
			op := OngoingProject{
				Name:             nameOr(re.Name, "Real Estate Project"),
				Type:             RealEstateCF,
				Entity:           entity,
				Amount:           Money(re.PendingAmount.OrZero(), re.Currency),
				ROI:              re.InterestRate.OrZero(),
				Maturity:         re.Maturity,
				ExtendedMaturity: re.ExtendedMaturity,
			}
			if !re.ExtendedInterestRate.IsZero() {
				r := re.ExtendedInterestRate.OrZero()
				op.LateInterestRate = &r
			}
			add(op)
		}
		for _, f := range p.Factoring.Entries {
			op := OngoingProject{
				Name:     nameOr(f.Name, "Factoring"),
				Type:     Factoring,
				Entity:   entity,
				Amount:   Money(f.Amount.OrZero(), f.Currency),
				ROI:      f.InterestRate.OrZero(),
				Maturity: f.Maturity,
			}
			if !f.LateInterestRate.IsZero() {
				r := f.LateInterestRate.OrZero()
				op.LateInterestRate = &r
			}
			add(op)
		}
	}

	effectiveDays := func(p OngoingProject) int {
		if p.Maturity == nil || p.Maturity.IsZero() {
			return math.MaxInt
		}
		days := p.Maturity.DaysSince(today)
		if days <= 0 && p.ExtendedMaturity != nil && !p.ExtendedMaturity.IsZero() {
			days = p.ExtendedMaturity.DaysSince(today)
		}
		return days
	}
	slices.SortStableFunc(projects, func(a, b OngoingProject) int {
		da, db := effectiveDays(a), effectiveDays(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return projects
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// DueWithin keeps the projects that are late or mature within days of today.
// days <= 0 keeps all of them.
func DueWithin(projects []OngoingProject, today date.Date, days int) []OngoingProject {
	if days <= 0 {
		return projects
	}
	var due []OngoingProject
	for _, p := range projects {
		if p.Maturity == nil || p.Maturity.IsZero() {
			continue
		}
		if s := p.Status(today); s.IsDelayed || s.Days <= days {
			due = append(due, p)
		}
	}
	return due
}

// DaysStatus tells how far a maturity is.
type DaysStatus struct {
	Days                 int    `json:"days"`
	IsDelayed            bool   `json:"is_delayed"`
	StatusText           string `json:"status_text"`
	UsedExtendedMaturity bool   `json:"used_extended_maturity"`
}

// GetDaysStatus counts the days to maturity. Once the maturity is reached the
// extended maturity, if any, is used instead. A maturity in the past is delayed.
func GetDaysStatus(maturity, extended *date.Date, today date.Date) DaysStatus {
	if maturity == nil || maturity.IsZero() {
		return DaysStatus{StatusText: "0d"}
	}
	days := maturity.DaysSince(today)
	usedExtended := false
	if days <= 0 && extended != nil && !extended.IsZero() {
		days = extended.DaysSince(today)
		usedExtended = true
	}
	abs := days
	if abs < 0 {
		abs = -abs
	}
	return DaysStatus{
		Days:                 abs,
		IsDelayed:            days < 0,
		StatusText:           fmt.Sprintf("%dd", abs),
		UsedExtendedMaturity: usedExtended,
	}
}
