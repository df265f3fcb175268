package dto

// Request fields are pointers so a missing field can be told apart from a zero
// value during validation. Field order is the order in which rules are checked.

type PhoneRequest struct {
	PhoneID  *int64  `json:"phoneId" validate:"required"`
	Phone    *string `json:"phone" validate:"required,min=1"`
	Whatsapp *bool   `json:"whatsapp" validate:"required"`
	Telegram *bool   `json:"telegram" validate:"required"`
	Type     *string `json:"type" validate:"required,min=1"`
}

type UpdateUserByAdminRequest struct {
	UserID               *string        `json:"userId" validate:"required,min=1"`
	UserIDToBeUpdated    *int64         `json:"userIdToBeUpdated" validate:"required"`
	UserIdpIDToBeUpdated *string        `json:"userIdpIdToBeUpdated" validate:"required,min=1"`
	Name                 *string        `json:"name" validate:"required,min=1"`
	Surname              *string        `json:"surname" validate:"required,min=1"`
	Email                *string        `json:"email,omitempty" validate:"omitnil,min=1,email"`
	UserTypeID           *int64         `json:"userTypeId" validate:"required"`
	Phones               []PhoneRequest `json:"phones" validate:"required,dive"`
	Admin                *bool          `json:"admin" validate:"required"`
	Active               *bool          `json:"active" validate:"required"`
}

type UpdateUserByCollaboratorRequest struct {
	UserID  *string        `json:"userId" validate:"required,min=1"`
	Name    *string        `json:"name" validate:"required,min=1"`
	Surname *string        `json:"surname" validate:"required,min=1"`
	Phones  []PhoneRequest `json:"phones" validate:"required,dive"`
}

type InviteUserRequest struct {
	UserEmail *string `json:"userEmail" validate:"required,invite_email"`
}

type GetUsersRequest struct {
	AdminUserID string  `json:"adminUserId" validate:"required"`
	Limit       *string `json:"limit" validate:"omitnil,min=1"`
	Offset      *string `json:"offset" validate:"omitnil,min=1"`
}

type ActivateUserByAdminRequest struct {
	AccessToken            string `json:"accessToken" validate:"required"`
	UserIdpIDToBeActivated string `json:"userIdpIdToBeActivated" validate:"required"`
}

type DeactivateUserByAdminRequest struct {
	AccessToken              string `json:"accessToken" validate:"required"`
	UserIdpIDToBeDeactivated string `json:"userIdpIdToBeDeactivated" validate:"required"`
}
