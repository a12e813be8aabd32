package domain

import "time"

// UserType is the marketplace role attached to an account.
type UserType string

const (
	UserTypeCustomer        UserType = "customer"
	UserTypeHousewife       UserType = "housewife"
	UserTypeVendor          UserType = "vendor"
	UserTypeDeliveryPartner UserType = "deliveryPartner"
	UserTypeAdmin           UserType = "admin"
)

// UserTypes lists every known role in display order.
var UserTypes = []UserType{
	UserTypeCustomer,
	UserTypeHousewife,
	UserTypeVendor,
	UserTypeDeliveryPartner,
	UserTypeAdmin,
}

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeCustomer, UserTypeHousewife, UserTypeVendor, UserTypeDeliveryPartner, UserTypeAdmin:
		return true
	}
	return false
}

// SelfRegistrable reports whether an account of this type may be created at signup.
func (t UserType) SelfRegistrable() bool {
	return t.Valid() && t != UserTypeAdmin
}

// User is the account record kept by the auth/data backend.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	UserType     UserType
	CreatedAt    time.Time
}
