package leave

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Policy is the entitlement calculation branch for a leave type. It is
// resolved once per leave type rather than re-matched on every call.
type Policy int

const (
	PolicyStandard Policy = iota
	PolicySick
	PolicyUnpaid
	PolicyAnnual
	PolicyFamilyResponsibility
	PolicyParental
)

// Well-known leave type ids. The hard policy branches are keyed on these;
// everything else falls through to the standard branch, with the parental
// family recognised by name.
const (
	TypeIDAnnual               = "b1f6a9a4-8c77-4a5e-9a2f-0d41c6a2e701"
	TypeIDSick                 = "4c0d2b8e-5f13-4e6b-8d94-7a25e9c1b302"
	TypeIDUnpaid               = "9e8b3c51-2a6d-47f0-b1c8-3f57d0a4e903"
	TypeIDFamilyResponsibility = "d5a71f20-6b94-4c3e-a8d2-1e60b8f5c104"
)

// Policy constants for the fixed statutory rules.
var (
	// AccrualCutoverDate: from this date onward hire-date based accrual rules
	// apply; before it, legacy opening balances do.
	AccrualCutoverDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	SickDaysPerCycle   = decimal.NewFromInt(30)
	FamilyDaysPerCycle = decimal.NewFromInt(3)

	MaternityDaysPerEvent = decimal.NewFromInt(120)
	PaternityDaysPerEvent = decimal.NewFromInt(10)
	ParentalDaysPerEvent  = decimal.NewFromInt(10)

	// UnlimitedEntitlement is the sentinel for unlimited / untracked pools.
	UnlimitedEntitlement = decimal.NewFromInt(9999)
)

const (
	SickCycleYears         = 3
	FamilyCycleYears       = 1
	QualifyingPeriodMonths = 4
	ParentalBlockMonths    = 12
)

// ResolvePolicy maps a leave type to its calculation branch. Keyed by the
// well-known ids first, then by name for the parental family.
func ResolvePolicy(lt LeaveType) Policy {
	switch lt.ID {
	case TypeIDSick:
		return PolicySick
	case TypeIDUnpaid:
		return PolicyUnpaid
	case TypeIDAnnual:
		return PolicyAnnual
	case TypeIDFamilyResponsibility:
		return PolicyFamilyResponsibility
	}
	if isParentalName(lt.Name) {
		return PolicyParental
	}
	return PolicyStandard
}

func isParentalName(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "maternity") ||
		strings.Contains(n, "paternity") ||
		strings.Contains(n, "parental")
}

// ParentalEntitlementPerEvent is the default once-off entitlement for one
// parental event.
func ParentalEntitlementPerEvent(lt LeaveType) decimal.Decimal {
	n := strings.ToLower(lt.Name)
	if strings.Contains(n, "maternity") {
		return MaternityDaysPerEvent
	}
	if strings.Contains(n, "paternity") {
		return PaternityDaysPerEvent
	}
	return ParentalDaysPerEvent
}
