package pmp

// Priv is a hart privilege level.
type Priv int

//go:generate go tool stringer -linecomment -type=Priv
const (
	PRIV_USER       = Priv(0) // user
	PRIV_SUPERVISOR = Priv(1) // supervisor
	PRIV_MACHINE    = Priv(3) // machine
)
