package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	BadgeNumber string `json:"badge_number"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position,omitempty"`
	BadgeNumber string `json:"badge_number"`
}
