package calculation

import (
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

// ApplyCOLA compounds the cost-of-living adjustment of every table year Y with
// fromYear <= Y < toYear onto amount, ascending, truncating to the dime after
// each step.
func ApplyCOLA(table WageIndex, amount decimal.Decimal, fromYear, toYear int) (decimal.Decimal, error) {
	for _, year := range table.Years() {
		if year < fromYear {
			continue
		}
		if year >= toYear {
			break
		}
		rate, err := table.COLARate(year)
		if err != nil {
			return decimal.Zero, err
		}
		amount = money.FloorDime(amount.Mul(money.PercentToRate(rate)))
	}
	return amount, nil
}
