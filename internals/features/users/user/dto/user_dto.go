// file: internals/features/users/user/dto/user_dto.go
package dto

/* ==============================
   UPDATE (PATCH /users/me)
============================== */

type UpdateProfileRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

/* ==============================
   ADMIN
============================== */

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}
