package handler

import (
	"github.com/asaskevich/govalidator"

	"usersvc/internal/account/models"
	"usersvc/pkg/domerrors"
)

type createAccountRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

func (r createAccountRequest) validate() error {
	if !govalidator.StringLength(r.ID, "1", "36") {
		return domerrors.New(domerrors.CodeBadRequest, "id is required")
	}
	if !govalidator.IsEmail(r.Email) || !govalidator.StringLength(r.Email, "3", "45") {
		return domerrors.New(domerrors.CodeBadRequest, "invalid email")
	}
	if !govalidator.StringLength(r.Username, "1", "20") {
		return domerrors.New(domerrors.CodeBadRequest, "invalid username")
	}
	if !govalidator.StringLength(r.Fullname, "1", "100") {
		return domerrors.New(domerrors.CodeBadRequest, "invalid fullname")
	}
	if len(r.Role) > 45 {
		return domerrors.New(domerrors.CodeBadRequest, "invalid role")
	}
	return nil
}

func (r createAccountRequest) toDraft() models.Account {
	return models.Account{
		ID:       r.ID,
		Email:    r.Email,
		Username: r.Username,
		Fullname: r.Fullname,
		Role:     r.Role,
	}
}

type updateAccountRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Fullname *string `json:"fullname"`
	Role     *string `json:"role"`
}

func (r updateAccountRequest) validate() error {
	if r.Email != nil && (!govalidator.IsEmail(*r.Email) || !govalidator.StringLength(*r.Email, "3", "45")) {
		return domerrors.New(domerrors.CodeBadRequest, "invalid email")
	}
	if r.Username != nil && !govalidator.StringLength(*r.Username, "1", "20") {
		return domerrors.New(domerrors.CodeBadRequest, "invalid username")
	}
	if r.Fullname != nil && !govalidator.StringLength(*r.Fullname, "1", "100") {
		return domerrors.New(domerrors.CodeBadRequest, "invalid fullname")
	}
	if r.Role != nil && !govalidator.StringLength(*r.Role, "1", "45") {
		return domerrors.New(domerrors.CodeBadRequest, "invalid role")
	}
	return nil
}

func (r updateAccountRequest) toPatch() models.Patch {
	return models.Patch{
		Email:    r.Email,
		Username: r.Username,
		Fullname: r.Fullname,
		Role:     r.Role,
	}
}

type accountResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
	Deleted  bool   `json:"deleted"`
}

func toResponse(a models.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Email:    a.Email,
		Username: a.Username,
		Fullname: a.Fullname,
		Role:     a.Role,
		Deleted:  a.Deleted,
	}
}
