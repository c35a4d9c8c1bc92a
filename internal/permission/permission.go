package permission

import (
	"encoding/json"
	"fmt"
)

// Permission is a set of capability flags packed into a fixed-width integer.
// Every named permission occupies a distinct bit, so sets combine with bitwise
// OR and membership is tested with bitwise AND.
type Permission uint32

const (
	PaymentView   Permission = 1 << 0
	PaymentCreate Permission = 1 << 1
)

// None is the empty permission set.
const None Permission = 0

var permissionNames = map[Permission]string{
	PaymentView:   "Payment_View",
	PaymentCreate: "Payment_Create",
}

var permissionValues = map[string]Permission{
	"Payment_View":   PaymentView,
	"Payment_Create": PaymentCreate,
}

// Has reports whether every flag in required is present in p. The empty
// required set is always satisfied.
func (p Permission) Has(required Permission) bool {
	return p&required == required
}

// With returns p with the given flags added.
func (p Permission) With(flags Permission) Permission {
	return p | flags
}

// Names lists the wire names of the flags in p, lowest bit first.
func (p Permission) Names() []string {
	names := []string{}
	for bit := Permission(1); bit != 0; bit <<= 1 {
		if p&bit != 0 {
			if name, ok := permissionNames[bit]; ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// FromNames folds a list of wire names into a permission set. Unknown names
// are rejected so a corrupted grant never silently widens.
func FromNames(names []string) (Permission, error) {
	var p Permission
	for _, name := range names {
		flag, ok := permissionValues[name]
		if !ok {
			return None, fmt.Errorf("unknown permission %q", name)
		}
		p |= flag
	}
	return p, nil
}

// MarshalJSON encodes the set as a JSON array of permission names, the format
// carried in user records and token claims.
func (p Permission) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Names())
}

// UnmarshalJSON decodes a JSON array of permission names.
func (p *Permission) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := FromNames(names)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// AnySetSatisfied reports whether granted fully covers at least one of the
// required sets. An empty list of sets means the route needs no permissions.
func AnySetSatisfied(granted Permission, requiredSets ...Permission) bool {
	if len(requiredSets) == 0 {
		return true
	}
	for _, required := range requiredSets {
		if granted.Has(required) {
			return true
		}
	}
	return false
}
