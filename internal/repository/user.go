package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. The email unique index turns races on the
// same address into database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			name: $name,
			email: $email,
			hash: $hash,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":  user.Name,
		"email": user.Email,
		"hash":  user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID, nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": ensureRecordID("user", id)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// GetByEmail retrieves a user by email, nil when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// GetByIDs retrieves users in one round trip, keyed by record ID. IDs with
// no matching user are simply absent from the map.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	users := make(map[string]*model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	records := make([]string, 0, len(ids))
	for _, id := range ids {
		records = append(records, ensureRecordID("user", id))
	}

	query := `SELECT * FROM array::map($ids, |$id| type::record($id))`
	vars := map[string]interface{}{"ids": records}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, fmt.Errorf("unexpected result format")
	}

	for _, row := range rows {
		user, err := parseUserRecord(row)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users[user.ID] = user
		}
	}
	return users, nil
}

func parseUserRecord(result interface{}) (*model.User, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		return nil, nil
	}

	return &model.User{
		ID:        convertSurrealID(data["id"]),
		Name:      getString(data, "name"),
		Email:     getString(data, "email"),
		Hash:      getString(data, "hash"),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}, nil
}
