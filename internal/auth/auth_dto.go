package auth

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	EmployeeID     string `json:"employee_id" binding:"required"`
	Username       string `json:"username" binding:"required,min=3,max=64"`
	Email          string `json:"email" binding:"required,email"`
	DepartmentCode string `json:"department_code"`
	Role           string `json:"role" binding:"required,oneof=EMPLOYEE MANAGER HR ADMIN"`
	Password       string `json:"password" binding:"required,min=8"`
}

type UserResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	DepartmentCode string `json:"department_code"`
	Role           string `json:"role"`
	IsActive       bool   `json:"is_active"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func mapToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		EmployeeID:     u.EmployeeID,
		Username:       u.Username,
		Email:          u.Email,
		DepartmentCode: u.DepartmentCode,
		Role:           u.Role,
		IsActive:       u.IsActive,
	}
}
