package domain

import (
	"strings"
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// BurnAddress is the receiver of every burn; tokens sent here are unrecoverable.
const BurnAddress = EmptyAddress

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) String() string {
	return string(a)
}
