package service

import "petcare-service/internal/model"

// Caller is the authenticated identity attached to every request by the
// auth middleware. OwnerID and VetID are the role-profile keys used on
// appointment and medical rows; only the field matching Role is set.
// Inactive and Deleted users never reach the service layer.
type Caller struct {
	UserID  uint
	Role    model.UserRole
	OwnerID uint
	VetID   uint
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

func (c Caller) IsVet() bool {
	return c.Role == model.RoleVeterinarian
}

func (c Caller) IsOwner() bool {
	return c.Role == model.RolePetOwner
}

// Authorize checks the caller's role against the roles an operation
// accepts. It is the first check at the top of every role-gated
// operation.
func Authorize(caller Caller, roles ...model.UserRole) error {
	for _, r := range roles {
		if caller.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// CanSeeAppointment is the visibility rule for appointment rows: admins
// see everything, vets their own schedule, owners their own bookings.
func (c Caller) CanSeeAppointment(a *model.Appointment) bool {
	switch {
	case c.IsAdmin():
		return true
	case c.IsVet():
		return a.VetID == c.VetID
	default:
		return a.OwnerID == c.OwnerID
	}
}

// CanSeePet applies the same rule to pets, which hang off the owner only.
func (c Caller) CanSeePet(p *model.Pet) bool {
	if c.IsOwner() {
		return p.OwnerID == c.OwnerID
	}
	return true
}
