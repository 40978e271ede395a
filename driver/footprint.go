package driver

// Identity classifies a native query error.
type Identity string

const (
	// IdentityNotUnique marks a uniqueness constraint violation.
	IdentityNotUnique Identity = "notUnique"
	// IdentityCatchall marks any other error.
	IdentityCatchall Identity = "catchall"
)

// Footprint is the driver-independent description of a native query error.
type Footprint struct {
	Identity Identity
	// Keys lists the columns or constraints involved, when known.
	Keys []string
}

// Catchall returns a footprint that carries no classification.
func Catchall() Footprint {
	return Footprint{Identity: IdentityCatchall, Keys: nil}
}

// NotUnique returns a footprint for a uniqueness violation on keys.
func NotUnique(keys ...string) Footprint {
	return Footprint{Identity: IdentityNotUnique, Keys: keys}
}
