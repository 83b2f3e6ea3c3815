package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/kareemadel/printshop-backend/pkg/db/models"
)

// LoginRequest carries the credential pair presented at login.
type LoginRequest struct {
	Username string
	Password string
}

// EmployeeDTO is the employee payload returned after authentication.
type EmployeeDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse bundles the token pair with the authenticated employee.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	Employee     EmployeeDTO `json:"employee"`
}

func newEmployeeDTO(employee *models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        employee.ID,
		Username:  employee.Username,
		FullName:  employee.FullName,
		Phone:     employee.Phone,
		CreatedAt: employee.CreatedAt,
	}
}
