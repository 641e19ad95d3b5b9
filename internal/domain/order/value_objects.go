package order

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidAddress = errors.New("shipping address is required and must be at most 500 characters")
	ErrInvalidPhone   = errors.New("contact phone must be 7 to 15 digits, optionally prefixed with +")
)

const MaxAddressLength = 500

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type Address struct {
	value string
}

func NewAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxAddressLength {
		return Address{}, ErrInvalidAddress
	}
	return Address{value: s}, nil
}

func (a Address) String() string { return a.value }

type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	if !phoneRegex.MatchString(s) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

// Contact groups the shipping details captured on the order.
type Contact struct {
	Address Address
	Phone   Phone
}

func NewContact(address, phone string) (Contact, error) {
	a, err := NewAddress(address)
	if err != nil {
		return Contact{}, err
	}
	p, err := NewPhone(phone)
	if err != nil {
		return Contact{}, err
	}
	return Contact{Address: a, Phone: p}, nil
}
