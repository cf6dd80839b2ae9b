package entity

const RoleAdmin = "admin"

type AdminLoginData struct {
	ID    string
	Email string
	Role  string
}
