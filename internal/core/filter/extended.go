package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/shopspring/decimal"
)

// LogicalOp combines a criterion with the result of the preceding ones.
type LogicalOp string

const (
	OpNone LogicalOp = ""
	OpAnd  LogicalOp = "and"
	OpOr   LogicalOp = "or"
)

// Comparison is the operator applied between a field and the criterion value.
type Comparison string

const (
	CmpEqual          Comparison = "="
	CmpNotEqual       Comparison = "!="
	CmpLess           Comparison = "<"
	CmpGreater        Comparison = ">"
	CmpLessOrEqual    Comparison = "<="
	CmpGreaterOrEqual Comparison = ">="
	CmpBegins         Comparison = "begins"
	CmpNotBegins      Comparison = "not_begins"
	CmpContains       Comparison = "contains"
	CmpNotContains    Comparison = "not_contains"
)

func (c Comparison) textual() bool {
	switch c {
	case CmpBegins, CmpNotBegins, CmpContains, CmpNotContains:
		return true
	}
	return false
}

func (c Comparison) known() bool {
	switch c {
	case CmpEqual, CmpNotEqual, CmpLess, CmpGreater, CmpLessOrEqual, CmpGreaterOrEqual:
		return true
	}
	return c.textual()
}

// FieldID names an entry field a criterion applies to.
type FieldID string

const (
	FieldNumber           FieldID = "number"
	FieldDOpe             FieldID = "dope"
	FieldDEffect          FieldID = "deffect"
	FieldLabel            FieldID = "label"
	FieldRef              FieldID = "ref"
	FieldNotes            FieldID = "notes"
	FieldLedger           FieldID = "ledger"
	FieldAccount          FieldID = "account"
	FieldCurrency         FieldID = "currency"
	FieldDebit            FieldID = "debit"
	FieldCredit           FieldID = "credit"
	FieldStatus           FieldID = "status"
	FieldOpeTemplate      FieldID = "ope_template"
	FieldOpeNumber        FieldID = "ope_number"
	FieldSettlementNumber FieldID = "settlement_number"
	FieldSettlementUser   FieldID = "settlement_user"
	FieldSettlementStamp  FieldID = "settlement_stamp"
	FieldConcilID         FieldID = "concil_id"
	FieldCreatedBy        FieldID = "created_by"
	FieldCreatedAt        FieldID = "created_at"
)

type fieldKind int

const (
	kindString fieldKind = iota + 1
	kindAmount
	kindCounter
	kindDate
	kindTimestamp
)

// fieldValue is the typed value of one entry field; only the member matching
// kind is meaningful.
type fieldValue struct {
	kind    fieldKind
	str     string
	amount  decimal.Decimal
	counter int64
	when    time.Time
}

func valueOf(e *domain.Entry, field FieldID) (fieldValue, bool) {
	switch field {
	case FieldNumber:
		return fieldValue{kind: kindCounter, counter: e.Number}, true
	case FieldOpeNumber:
		return fieldValue{kind: kindCounter, counter: e.OpeNumber}, true
	case FieldSettlementNumber:
		return fieldValue{kind: kindCounter, counter: e.SettlementNumber}, true
	case FieldConcilID:
		return fieldValue{kind: kindCounter, counter: e.ConcilID}, true
	case FieldDOpe:
		return fieldValue{kind: kindDate, when: e.DOpe}, true
	case FieldDEffect:
		return fieldValue{kind: kindDate, when: e.DEffect}, true
	case FieldSettlementStamp:
		var stamp time.Time
		if e.SettlementStamp != nil {
			stamp = *e.SettlementStamp
		}
		return fieldValue{kind: kindTimestamp, when: stamp}, true
	case FieldCreatedAt:
		return fieldValue{kind: kindTimestamp, when: e.CreatedAt}, true
	case FieldDebit:
		return fieldValue{kind: kindAmount, amount: e.Debit}, true
	case FieldCredit:
		return fieldValue{kind: kindAmount, amount: e.Credit}, true
	case FieldLabel:
		return fieldValue{kind: kindString, str: e.Label}, true
	case FieldRef:
		return fieldValue{kind: kindString, str: e.Ref}, true
	case FieldNotes:
		return fieldValue{kind: kindString, str: e.Notes}, true
	case FieldLedger:
		return fieldValue{kind: kindString, str: e.Ledger}, true
	case FieldAccount:
		return fieldValue{kind: kindString, str: e.Account}, true
	case FieldCurrency:
		return fieldValue{kind: kindString, str: e.Currency}, true
	case FieldStatus:
		return fieldValue{kind: kindString, str: e.Status.String()}, true
	case FieldOpeTemplate:
		return fieldValue{kind: kindString, str: e.OpeTemplate}, true
	case FieldSettlementUser:
		return fieldValue{kind: kindString, str: e.SettlementUser}, true
	case FieldCreatedBy:
		return fieldValue{kind: kindString, str: e.CreatedBy}, true
	}
	return fieldValue{}, false
}

// Criterion is one line of a user-built filter.
type Criterion struct {
	Op    LogicalOp  `json:"op"`
	Field FieldID    `json:"field"`
	Cond  Comparison `json:"cond"`
	Value string     `json:"value"`
}

// Evaluator evaluates criteria against entries. Criterion values are typed
// by the user, so they are read with the display formatters.
type Evaluator struct {
	amounts  *utils.AmountFormatter
	dates    *utils.DateFormatter
	collator *utils.Collator
}

// NewEvaluator returns an evaluator using the given formatters.
func NewEvaluator(amounts *utils.AmountFormatter, dates *utils.DateFormatter, collator *utils.Collator) *Evaluator {
	return &Evaluator{amounts: amounts, dates: dates, collator: collator}
}

// Visible reports whether the entry is displayed under the view.
func (ev *Evaluator) Visible(view *View, e *domain.Entry, now time.Time) bool {
	if view.UseExtended {
		return ev.EvaluateExtendedFilter(e, view.Extended)
	}
	return view.Standard.Matches(e, now)
}

// EvaluateExtendedFilter folds the criteria left to right.
//
// Invalid criteria do not contribute. The first valid criterion seeds the
// result; each following one is combined with its own operator, a missing
// operator meaning And. Without any valid criterion the entry is not visible.
func (ev *Evaluator) EvaluateExtendedFilter(e *domain.Entry, criteria []Criterion) bool {
	seeded := false
	result := false
	for i := range criteria {
		c := &criteria[i]
		ok, valid := ev.evaluate(e, c)
		if !valid {
			continue
		}
		if !seeded {
			result = ok
			seeded = true
			continue
		}
		if c.Op == OpOr {
			result = result || ok
		} else {
			result = result && ok
		}
	}
	return seeded && result
}

// IsValid reports whether the criterion is complete enough to be evaluated.
func (ev *Evaluator) IsValid(c *Criterion) bool {
	_, err := ev.operand(c)
	return err == nil
}

// operand checks the criterion and returns its value typed after the field.
func (ev *Evaluator) operand(c *Criterion) (fieldValue, error) {
	if !c.Cond.known() {
		return fieldValue{}, fmt.Errorf("unknown comparison %q", c.Cond)
	}
	probe, ok := valueOf(&domain.Entry{}, c.Field)
	if !ok {
		return fieldValue{}, fmt.Errorf("unknown field %q", c.Field)
	}
	if probe.kind == kindString {
		return fieldValue{kind: kindString, str: c.Value}, nil
	}
	if c.Cond.textual() {
		return fieldValue{}, fmt.Errorf("comparison %q only applies to text fields", c.Cond)
	}
	value := strings.TrimSpace(c.Value)
	if value == "" {
		return fieldValue{}, fmt.Errorf("empty value for field %q", c.Field)
	}
	switch probe.kind {
	case kindAmount:
		amount, err := ev.amounts.Parse(value)
		return fieldValue{kind: kindAmount, amount: amount}, err
	case kindCounter:
		counter, err := strconv.ParseInt(value, 10, 64)
		return fieldValue{kind: kindCounter, counter: counter}, err
	case kindDate:
		when, err := ev.dates.Parse(value)
		return fieldValue{kind: kindDate, when: when}, err
	default:
		when, err := ev.dates.ParseTimestamp(value)
		return fieldValue{kind: kindTimestamp, when: when}, err
	}
}

func (ev *Evaluator) evaluate(e *domain.Entry, c *Criterion) (result bool, valid bool) {
	want, err := ev.operand(c)
	if err != nil {
		return false, false
	}
	got, _ := valueOf(e, c.Field)

	if c.Cond.textual() {
		switch c.Cond {
		case CmpBegins:
			return utils.HasPrefixFold(got.str, want.str), true
		case CmpNotBegins:
			return !utils.HasPrefixFold(got.str, want.str), true
		case CmpContains:
			return utils.ContainsFold(got.str, want.str), true
		default:
			return !utils.ContainsFold(got.str, want.str), true
		}
	}

	var cmp int
	switch got.kind {
	case kindString:
		cmp = ev.collator.Compare(got.str, want.str)
	case kindAmount:
		cmp = got.amount.Cmp(want.amount)
	case kindCounter:
		cmp = compareInt(got.counter, want.counter)
	case kindDate:
		cmp = domain.DateOnly(got.when).Compare(domain.DateOnly(want.when))
	default:
		cmp = got.when.Compare(want.when)
	}

	switch c.Cond {
	case CmpEqual:
		return cmp == 0, true
	case CmpNotEqual:
		return cmp != 0, true
	case CmpLess:
		return cmp < 0, true
	case CmpGreater:
		return cmp > 0, true
	case CmpLessOrEqual:
		return cmp <= 0, true
	default:
		return cmp >= 0, true
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
