package domain

import "encoding/json"

// User is a user document exactly as the registration service emitted it.
// It is never decoded, so nulls and unknown fields reach the caller unchanged.
type User json.RawMessage

func (u User) MarshalJSON() ([]byte, error) {
	return marshalRaw(u)
}

func (u *User) UnmarshalJSON(data []byte) error {
	*u = append((*u)[0:0], data...)
	return nil
}

// UserPage is the {users, total} document of a company listing, kept verbatim.
type UserPage json.RawMessage

func (p UserPage) MarshalJSON() ([]byte, error) {
	return marshalRaw(p)
}

func (p *UserPage) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

func marshalRaw(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte("null"), nil
	}
	return data, nil
}

// Phone is one phone of an update command.
type Phone struct {
	PhoneID  int64  `json:"phoneId"`
	Phone    string `json:"phone"`
	Whatsapp bool   `json:"whatsapp"`
	Telegram bool   `json:"telegram"`
	Type     string `json:"type"`
}

// UpdateUserByAdmin is sent to the registration service as is.
type UpdateUserByAdmin struct {
	UserID               string  `json:"userId"`
	UserIDToBeUpdated    int64   `json:"userIdToBeUpdated"`
	UserIdpIDToBeUpdated string  `json:"userIdpIdToBeUpdated"`
	Name                 string  `json:"name"`
	Surname              string  `json:"surname"`
	Email                string  `json:"email,omitempty"`
	UserTypeID           int64   `json:"userTypeId"`
	Phones               []Phone `json:"phones"`
	Admin                bool    `json:"admin"`
	Active               bool    `json:"active"`
}

type UpdateUserByCollaborator struct {
	UserID  string  `json:"userId"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Phones  []Phone `json:"phones"`
}

type UserFilter struct {
	AdminUserID string
	Limit       string
	Offset      string
}
