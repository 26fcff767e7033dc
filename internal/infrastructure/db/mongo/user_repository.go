package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository stores member records. It backs both the user directory
// and the password source of every user folder; the folder field scopes a
// login to the folder owning it.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           string   `bson:"_id"`
	Login        string   `bson:"login"`
	FullName     string   `bson:"fullname"`
	Email        string   `bson:"email,omitempty"`
	Description  string   `bson:"description,omitempty"`
	Location     string   `bson:"location,omitempty"`
	HomePage     string   `bson:"home_page,omitempty"`
	Groups       []string `bson:"groups"`
	Roles        []string `bson:"roles"`
	Folder       string   `bson:"folder"`
	PasswordHash string   `bson:"password_hash"`
	CreatedAt    int64    `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	folder := u.Folder
	if folder == "" {
		folder = domain.DefaultUserFolderPath
	}
	id := u.ID
	if id == "" {
		id = u.Login
	}
	return mongoUser{
		ID:           id,
		Login:        u.Login,
		FullName:     u.FullName,
		Email:        u.Email,
		Description:  u.Description,
		Location:     u.Location,
		HomePage:     u.HomePage,
		Groups:       nonNil(u.Groups),
		Roles:        nonNil(u.Roles),
		Folder:       domain.CleanPath(folder),
		PasswordHash: u.PasswordHash,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Login:        mu.Login,
		FullName:     mu.FullName,
		Email:        mu.Email,
		Description:  mu.Description,
		Location:     mu.Location,
		HomePage:     mu.HomePage,
		Groups:       nonNil(mu.Groups),
		Roles:        nonNil(mu.Roles),
		Folder:       mu.Folder,
		PasswordHash: mu.PasswordHash,
	}
}

// AddUser inserts a new member. The user id defaults to the login.
func (r *UserRepository) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	doc.CreatedAt = time.Now().UTC().Unix()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByLogin looks a login up within the user folder at folder.
func (r *UserRepository) FindByLogin(ctx context.Context, folder, login string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"folder": domain.CleanPath(folder), "login": login})
}

func (r *UserRepository) GetMemberByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": id})
}

// SearchUsers matches every non-empty criterion as a case-insensitive
// substring; all given criteria must match.
func (r *UserRepository) SearchUsers(ctx context.Context, q ports.UserSearch) ([]domain.PrincipalInfo, error) {
	filter := bson.M{}
	for key, term := range map[string]string{
		"_id":      q.ID,
		"login":    q.Login,
		"fullname": q.FullName,
		"email":    q.Email,
	} {
		if term != "" {
			filter[key] = containsRegex(term)
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "login": 1})
	if q.MaxResults > 0 {
		opts.SetLimit(int64(q.MaxResults))
	}
	return r.principals(ctx, filter, opts)
}

func (r *UserRepository) EnumerateUsers(ctx context.Context) ([]domain.PrincipalInfo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "login": 1})
	return r.principals(ctx, bson.M{}, opts)
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "folder", Value: 1}, {Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "fullname", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) principals(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.PrincipalInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]domain.PrincipalInfo, len(docs))
	for i, d := range docs {
		out[i] = domain.PrincipalInfo{UserID: d.ID, Login: d.Login}
	}
	return out, nil
}

func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
