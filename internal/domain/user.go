package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account of the back-office application.
type User struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Role   Role   `json:"role"`
	Actif  bool   `json:"actif"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns "Prenom Nom", skipping empty parts.
func (u *User) FullName() string {
	return joinName(u.Prenom, u.Nom)
}

// UserCreate is the body of POST /users.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nom      string `json:"nom" validate:"required"`
	Prenom   string `json:"prenom" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin user"`
	Actif    *bool  `json:"actif,omitempty"`
}

// UserUpdate is the body of PUT /users/{id}. Nil fields are not sent.
type UserUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Nom      *string `json:"nom,omitempty" validate:"omitempty,min=1"`
	Prenom   *string `json:"prenom,omitempty"`
	Role     *Role   `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	Actif    *bool   `json:"actif,omitempty"`
}
