package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacthub/internal/models"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrShareNotFound   = errors.New("share not found")
	ErrShareExists     = errors.New("share already exists")
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, contact models.Contact) error {
	const query = `
		INSERT INTO contacts (
			id, owner_id, first_name, last_name, contact_number, email_address,
			photo_bucket, photo_key, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		contact.ID,
		contact.OwnerID,
		contact.FirstName,
		contact.LastName,
		contact.ContactNumber,
		contact.EmailAddress,
		contact.PhotoBucket,
		contact.PhotoKey,
	)
	return err
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (models.Contact, error) {
	const query = `
		SELECT id, owner_id, first_name, last_name, contact_number, email_address,
		       photo_bucket, photo_key, created_at, updated_at
		FROM contacts WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var contact models.Contact
	if err := row.Scan(
		&contact.ID,
		&contact.OwnerID,
		&contact.FirstName,
		&contact.LastName,
		&contact.ContactNumber,
		&contact.EmailAddress,
		&contact.PhotoBucket,
		&contact.PhotoKey,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Contact{}, ErrContactNotFound
		}
		return models.Contact{}, err
	}

	shares, err := r.sharesFor(ctx, []string{contact.ID})
	if err != nil {
		return models.Contact{}, err
	}
	contact.SharedWith = shares[contact.ID]
	return contact, nil
}

// ListVisible returns the contacts the given user owns plus the ones shared
// with them, newest first.
func (r *ContactRepository) ListVisible(ctx context.Context, userID string) ([]models.Contact, error) {
	const query = `
		SELECT DISTINCT c.id, c.owner_id, c.first_name, c.last_name, c.contact_number,
		       c.email_address, c.photo_bucket, c.photo_key, c.created_at, c.updated_at
		FROM contacts c
		LEFT JOIN contact_shares s ON s.contact_id = c.id
		WHERE c.owner_id = $1 OR s.user_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	var contactIDs []string
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.OwnerID,
			&contact.FirstName,
			&contact.LastName,
			&contact.ContactNumber,
			&contact.EmailAddress,
			&contact.PhotoBucket,
			&contact.PhotoKey,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
		contactIDs = append(contactIDs, contact.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shares, err := r.sharesFor(ctx, contactIDs)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		contacts[i].SharedWith = shares[contacts[i].ID]
	}
	return contacts, nil
}

// ContactUpdate carries the fields of a partial contact update. Nil fields
// are left unchanged.
type ContactUpdate struct {
	FirstName     *string
	LastName      *string
	ContactNumber *string
	EmailAddress  *string
	PhotoBucket   *string
	PhotoKey      *string
}

func (r *ContactRepository) Update(ctx context.Context, id string, update ContactUpdate) error {
	const query = `
		UPDATE contacts
		SET first_name     = COALESCE($2, first_name),
		    last_name      = COALESCE($3, last_name),
		    contact_number = COALESCE($4, contact_number),
		    email_address  = COALESCE($5, email_address),
		    photo_bucket   = COALESCE($6, photo_bucket),
		    photo_key      = COALESCE($7, photo_key),
		    updated_at     = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id,
		update.FirstName,
		update.LastName,
		update.ContactNumber,
		update.EmailAddress,
		update.PhotoBucket,
		update.PhotoKey,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contacts WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) AddShare(ctx context.Context, contactID string, share models.ShareEntry) error {
	const query = `
		INSERT INTO contact_shares (contact_id, user_id, email, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.pool.Exec(ctx, query, contactID, share.UserID, share.Email)
	if isUniqueViolation(err) {
		return ErrShareExists
	}
	return err
}

func (r *ContactRepository) RemoveShare(ctx context.Context, contactID string, email string) error {
	const query = `DELETE FROM contact_shares WHERE contact_id = $1 AND email = $2`
	cmd, err := r.pool.Exec(ctx, query, contactID, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrShareNotFound
	}
	return nil
}

func (r *ContactRepository) sharesFor(ctx context.Context, contactIDs []string) (map[string][]models.ShareEntry, error) {
	shares := make(map[string][]models.ShareEntry, len(contactIDs))
	if len(contactIDs) == 0 {
		return shares, nil
	}

	const query = `
		SELECT contact_id, user_id, email
		FROM contact_shares
		WHERE contact_id = ANY($1)
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, contactIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var contactID string
		var share models.ShareEntry
		if err := rows.Scan(&contactID, &share.UserID, &share.Email); err != nil {
			return nil, err
		}
		shares[contactID] = append(shares[contactID], share)
	}
	return shares, rows.Err()
}
