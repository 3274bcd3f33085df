package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixClock pins the current year used for COLAs.
func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

// smallTable is a three-year series with cutoff 2001; 2003 onward is future.
func smallTable(t *testing.T) *wageindex.Table {
	t.Helper()
	table, err := wageindex.NewTable(wageindex.Metadata{CutoffYear: 2001}, []wageindex.Entry{
		{Year: 2000, AverageWageIndex: dec("1000"), ContributionBase: dec("10000"), COLARate: dec("1")},
		{Year: 2001, AverageWageIndex: dec("2000"), ContributionBase: dec("20000"), COLARate: dec("2")},
		{Year: 2002, AverageWageIndex: dec("9779.44"), ContributionBase: dec("30000"), COLARate: dec("3")},
	})
	require.NoError(t, err)
	return table
}

// flatEarnings returns amount for every year in [from, to].
func flatEarnings(from, to int, amount string) domain.EarningsHistory {
	var h domain.EarningsHistory
	for y := from; y <= to; y++ {
		h = append(h, domain.EarningsRecord{Year: y, Amount: dec(amount)})
	}
	return h
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
