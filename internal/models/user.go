package models

type Role string

const (
	RoleTherapist Role = "therapist"
	RoleParent    Role = "parent"
)

// Profile is the opaque object the mock authentication boundary returns. The
// service never validates credentials; any well-formed submission yields a
// profile whose display name is used for greeting.
type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	Workplace string `json:"workplace,omitempty"`
	Wilaya    string `json:"wilaya,omitempty"`
}

func (p Profile) DisplayName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
