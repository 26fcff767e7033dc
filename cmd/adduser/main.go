// Command adduser creates a member in a user folder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmsbridge/restapi/internal/core/domain"
	mongostore "github.com/cmsbridge/restapi/internal/infrastructure/db/mongo"
	"github.com/cmsbridge/restapi/internal/pkg/config"
)

func main() {
	login := flag.String("login", "", "Login name (required)")
	password := flag.String("password", "", "Password (required)")
	fullname := flag.String("fullname", "", "Full name")
	email := flag.String("email", "", "Email address")
	groups := flag.String("groups", "", "Comma separated groups")
	roles := flag.String("roles", domain.RoleMember, "Comma separated roles")
	folder := flag.String("folder", domain.DefaultUserFolderPath, "Path of the user folder owning the account")
	flag.Parse()

	if *login == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Error: -login and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var mongoCfg config.MongoConfig
	if err := envconfig.Process(ctx, &mongoCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: mongoCfg.URI, Database: mongoCfg.Database})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating indexes: %v\n", err)
		os.Exit(1)
	}

	user, err := users.AddUser(ctx, &domain.User{
		Login:        *login,
		FullName:     *fullname,
		Email:        *email,
		Groups:       splitList(*groups),
		Roles:        splitList(*roles),
		Folder:       *folder,
		PasswordHash: string(hash),
	})
	if errors.Is(err, domain.ErrUserExists) {
		fmt.Fprintf(os.Stderr, "Error: user %q already exists in %s\n", *login, *folder)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added %s (%s) to %s\n", user.ID, strings.Join(user.Roles, ", "), user.Folder)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
