package domain

import (
	"strings"
	"unicode"
)

// Email — адрес электронной почты с минимальной проверкой формата.
type Email struct {
	value string
}

// NewEmail валидирует и создаёт адрес электронной почты.
func NewEmail(value string) (Email, error) {
	if value == "" || !strings.Contains(value, "@") {
		return Email{}, ErrEmailInvalid
	}
	return Email{value: value}, nil
}

// Value возвращает адрес как строку.
func (e Email) Value() string { return e.value }

func (e Email) String() string { return e.value }

// PhoneNumber — необязательный номер телефона. Пустое значение допустимо;
// непустое должно содержать от 5 до 15 цифр.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber валидирует и создаёт номер телефона.
func NewPhoneNumber(value string) (PhoneNumber, error) {
	if value == "" {
		return PhoneNumber{}, nil
	}
	digits := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 5 || digits > 15 {
		return PhoneNumber{}, ErrPhoneInvalid
	}
	return PhoneNumber{value: value}, nil
}

// Value возвращает номер как строку (пустую, если номер не задан).
func (p PhoneNumber) Value() string { return p.value }

// IsEmpty сообщает, задан ли номер.
func (p PhoneNumber) IsEmpty() bool { return p.value == "" }

func (p PhoneNumber) String() string { return p.value }

// Address — свободный текстовый адрес клиента длиной от 5 до 200 символов.
type Address struct {
	value string
}

// NewAddress валидирует и создаёт адрес.
func NewAddress(value string) (Address, error) {
	if len(value) < 5 || len(value) > 200 {
		return Address{}, ErrAddressInvalid
	}
	return Address{value: value}, nil
}

// Value возвращает адрес как строку.
func (a Address) Value() string { return a.value }

// ContainsRegion проверяет вхождение кода региона в текст адреса.
// Эвристика по подстроке сохранена ради совместимости расчёта налога:
// улица со словом «CAnal» даст ложное срабатывание. Замена на
// структурированное поле штата меняет поведение только здесь.
func (a Address) ContainsRegion(code string) bool {
	return code != "" && strings.Contains(a.value, code)
}

func (a Address) String() string { return a.value }
