package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartauth/auth-service/internal/core/domain"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll  *mongo.Collection
	roles *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		coll:  db.Collection(userCollection),
		roles: db.Collection(roleCollection),
	}
}

// mongoUser stores role references by id only; the role documents themselves
// are resolved on read. Deleting a user never touches the roles collection.
type mongoUser struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	PasswordHash string               `bson:"password_hash"`
	Enabled      bool                 `bson:"enabled"`
	RoleIDs      []primitive.ObjectID `bson:"role_ids"`
	CreatedAt    int64                `bson:"created_at"`
	UpdatedAt    int64                `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	roleIDs := make([]primitive.ObjectID, 0, len(user.Roles))
	for _, role := range user.Roles {
		oid, err := primitive.ObjectIDFromHex(role.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid role id %q: %w", role.ID, err)
		}
		roleIDs = append(roleIDs, oid)
	}

	doc := mongoUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Enabled:      user.Enabled,
		RoleIDs:      roleIDs,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get ID
	created, err := r.FindByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.toDomain(ctx, &mu)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.toDomain(ctx, &mu)
}

// AddRole appends a role reference with $addToSet, which is atomic per
// document and gives set semantics without a multi-statement transaction.
func (r *MongoUserRepository) AddRole(ctx context.Context, userID, roleID string) error {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	roleOID, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userOID},
		bson.M{
			"$addToSet": bson.M{"role_ids": roleOID},
			"$set":      bson.M{"updated_at": time.Now().UTC().Unix()},
		},
	)
	if err != nil {
		return fmt.Errorf("add role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// toDomain resolves the user's role references against the roles collection.
func (r *MongoUserRepository) toDomain(ctx context.Context, mu *mongoUser) (*domain.User, error) {
	roles := make([]domain.Role, 0, len(mu.RoleIDs))
	if len(mu.RoleIDs) > 0 {
		cur, err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": mu.RoleIDs}})
		if err != nil {
			return nil, fmt.Errorf("resolve roles: %w", err)
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var mr mongoRole
			if err := cur.Decode(&mr); err != nil {
				return nil, fmt.Errorf("decode role: %w", err)
			}
			roles = append(roles, *mr.toDomain())
		}
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("resolve roles: %w", err)
		}
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		Enabled:      mu.Enabled,
		Roles:        roles,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}, nil
}
