package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/archoffice/bff-admin/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const inviteHashBytes = 32

type InviteRepository interface {
	CreateInvite(ctx context.Context, adminIdpUserID, email string) (domain.Invite, error)
}

type InviteRepositoryImpl struct {
	db     *sqlx.DB
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func CreateInviteRepository(db *sqlx.DB, ttl time.Duration, logger zerolog.Logger) InviteRepository {
	return &InviteRepositoryImpl{db: db, ttl: ttl, now: time.Now, logger: logger}
}

// CreateInvite stores a new invite and returns it with the hash that goes into
// the invitation link.
func (r *InviteRepositoryImpl) CreateInvite(ctx context.Context, adminIdpUserID, email string) (domain.Invite, error) {
	hash, err := newInviteHash()
	if err != nil {
		r.logger.Error().Err(err).Str("component", "CreateInvite").Msg("")
		return domain.Invite{}, err
	}

	createdAt := r.now()
	invite := domain.Invite{
		Hash:           hash,
		Email:          email,
		AdminIdpUserID: adminIdpUserID,
		CreatedAt:      createdAt.UnixMilli(),
		ExpiresAt:      createdAt.Add(r.ttl).UnixMilli(),
	}

	nstmt, err := r.db.PrepareNamedContext(ctx, "INSERT INTO invites(hash, email, admin_idp_user_id, created_at, expires_at) VALUES (:hash, :email, :admin_idp_user_id, :created_at, :expires_at) RETURNING id")
	if err != nil {
		r.logger.Error().Err(err).Str("component", "CreateInvite").Msg("")
		return domain.Invite{}, fmt.Errorf("preparing invite insert: %w", err)
	}
	defer nstmt.Close()

	if err := nstmt.GetContext(ctx, &invite.ID, invite); err != nil {
		r.logger.Error().Err(err).Str("component", "CreateInvite").Msg("")
		return domain.Invite{}, fmt.Errorf("inserting invite: %w", err)
	}

	return invite, nil
}

func newInviteHash() (string, error) {
	b := make([]byte, inviteHashBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating invite hash: %w", err)
	}

	return hex.EncodeToString(b), nil
}
