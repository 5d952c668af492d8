package userquestion

import (
	"time"

	"github.com/shopspring/decimal"

	"quizbank/internal/core/apperror"
)

// SM-2 constants. Ease never drops below MinEase, matching the classic
// algorithm's floor.
var (
	DefaultEase = decimal.NewFromFloat(2.5)
	MinEase     = decimal.NewFromFloat(1.3)
)

// Apply updates the scheduling state for one graded answer using the SM-2
// algorithm. Grade is 0..5; below 3 resets the repetition streak and makes
// the question due again the next day.
//
// Ease update: ef' = ef + (0.1 - (5-g)*(0.08 + (5-g)*0.02)), floored at 1.3.
func (uq *UserQuestion) Apply(grade int, now time.Time) error {
	if grade < 0 || grade > 5 {
		return apperror.NewValidation("grade must be between 0 and 5").
			WithDetail("field", "grade").
			WithDetail("value", grade)
	}

	q := decimal.NewFromInt(int64(grade))
	diff := decimal.NewFromInt(5).Sub(q)
	delta := decimal.NewFromFloat(0.1).
		Sub(diff.Mul(decimal.NewFromFloat(0.08).Add(diff.Mul(decimal.NewFromFloat(0.02)))))

	ease := uq.EaseFactor.Add(delta)
	if ease.LessThan(MinEase) {
		ease = MinEase
	}
	uq.EaseFactor = ease.Round(2)

	if grade < 3 {
		uq.Repetitions = 0
		uq.IntervalDays = 1
	} else {
		switch uq.Repetitions {
		case 0:
			uq.IntervalDays = 1
		case 1:
			uq.IntervalDays = 6
		default:
			next := decimal.NewFromInt(int64(uq.IntervalDays)).Mul(uq.EaseFactor)
			uq.IntervalDays = int(next.Ceil().IntPart())
		}
		uq.Repetitions++
	}

	uq.LastGrade = &grade
	uq.DueAt = now.UTC().AddDate(0, 0, uq.IntervalDays)
	return nil
}
