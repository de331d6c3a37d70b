package pmp

// Access is the kind of memory access being checked.
type Access int

//go:generate go tool stringer -linecomment -type=Access
const (
	ACCESS_READ    = Access(0) // read
	ACCESS_WRITE   = Access(1) // write
	ACCESS_EXECUTE = Access(2) // execute
)

// Perm returns the permission bit needed for the access.
func (access Access) Perm() Perm {
	return Perm(1 << access)
}
