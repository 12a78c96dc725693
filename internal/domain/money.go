package domain

import (
	"fmt"
	"math"
)

// MoneyEpsilon — допуск при сравнении денежных сумм (центовая точность).
const MoneyEpsilon = 0.01

// Money — неизменяемое денежное значение. Сумма всегда неотрицательная;
// конструктор отклоняет NaN, бесконечности и отрицательные значения.
type Money struct {
	amount float64
}

// NewMoney создаёт денежное значение или возвращает ошибку валидации.
func NewMoney(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrMoneyInvalid
	}
	if amount < 0 {
		return Money{}, ErrMoneyNegative
	}
	return Money{amount: amount}, nil
}

// MustMoney создаёт денежное значение и паникует при некорректной сумме.
// Используется для констант и фикстур в тестах.
func MustMoney(amount float64) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(fmt.Sprintf("money: invalid amount %v: %v", amount, err))
	}
	return m
}

// Amount возвращает сумму как float64.
func (m Money) Amount() float64 {
	return m.amount
}

// Add возвращает сумму двух значений.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub возвращает разность. Результат насыщается в нуле: денежные значения
// не бывают отрицательными, а вычитаемая скидка по инвариантам пайплайна
// никогда не превышает уменьшаемое.
func (m Money) Sub(other Money) Money {
	result := m.amount - other.amount
	if result < 0 {
		result = 0
	}
	return Money{amount: result}
}

// Mul умножает сумму на неотрицательный коэффициент.
func (m Money) Mul(factor float64) Money {
	result := m.amount * factor
	if result < 0 || math.IsNaN(result) {
		result = 0
	}
	return Money{amount: result}
}

// Div делит сумму на делитель; нулевой делитель даёт нулевую сумму.
func (m Money) Div(divisor float64) Money {
	if divisor == 0 {
		return Money{}
	}
	return m.Mul(1 / divisor)
}

// Equals сравнивает значения с допуском MoneyEpsilon.
func (m Money) Equals(other Money) bool {
	return math.Abs(m.amount-other.amount) < MoneyEpsilon
}

// LessThan — строгое «меньше».
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// GreaterOrEqual — «больше или равно».
func (m Money) GreaterOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// IsZero сообщает, является ли сумма нулевой с учётом допуска.
func (m Money) IsZero() bool {
	return m.amount < MoneyEpsilon
}

func (m Money) String() string {
	return fmt.Sprintf("$%.2f", m.amount)
}
