package domain

type Invite struct {
	ID             int64  `db:"id"`
	Hash           string `db:"hash"`
	Email          string `db:"email"`
	AdminIdpUserID string `db:"admin_idp_user_id"`
	CreatedAt      int64  `db:"created_at"`
	ExpiresAt      int64  `db:"expires_at"`
}
