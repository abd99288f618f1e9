package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/identado/mongo-identity/domain/role"
	"github.com/identado/mongo-identity/domain/user"
	"github.com/identado/mongo-identity/pkg/config"
	"github.com/identado/mongo-identity/pkg/logger"
	"github.com/identado/mongo-identity/pkg/mongox"
)

const usage = `identity-admin - operational tool for the identity document store

Usage:
  identity-admin <command> [flags]

Commands:
  create-user  -name <userName> [-email <email>]
  find-user    -name <userName> | -id <id>
  delete-user  -id <id>
  add-role     -id <userId> -role <roleName>
  create-role  -name <roleName>
  find-role    -name <roleName>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, log, err := config.Initialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	client, err := mongox.NewClient(cfg.Mongo.Endpoint, cfg.Mongo.AccessKey, log,
		mongox.WithConnectTimeout(cfg.Mongo.ConnectTimeout))
	if err != nil {
		log.Fatal("Failed to initialize MongoDB client", zap.Error(err))
	}

	ctx := context.Background()
	defer func() {
		_ = client.Close(ctx)
	}()

	users, err := user.NewMongoStore(client, cfg.Mongo.Database, cfg.Mongo.UsersCollection,
		user.WithTenantID(cfg.Identity.TenantID))
	if err != nil {
		log.Fatal("Failed to build user store", zap.Error(err))
	}

	roles, err := role.NewMongoStore(client, cfg.Mongo.Database, cfg.Mongo.RolesCollection)
	if err != nil {
		log.Fatal("Failed to build role store", zap.Error(err))
	}

	if err := run(ctx, os.Args[1], os.Args[2:], users, roles, log); err != nil {
		log.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, users *user.MongoStore, roles *role.MongoStore, log *logger.Logger) error {
	switch command {
	case "create-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		name := fs.String("name", "", "user name")
		email := fs.String("email", "", "email address")
		_ = fs.Parse(args)
		if *name == "" {
			return fmt.Errorf("-name is required")
		}

		u := user.NewUser(*name)
		u.Email = *email
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		log.Info("User created", zap.String("id", u.ID.String()), zap.String("user_name", u.UserName))
		return nil

	case "find-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		name := fs.String("name", "", "user name")
		id := fs.String("id", "", "user id")
		_ = fs.Parse(args)

		var (
			u   *user.User
			err error
		)
		switch {
		case *id != "":
			u, err = users.FindByID(ctx, *id)
		case *name != "":
			u, err = users.FindByName(ctx, *name)
		default:
			return fmt.Errorf("-name or -id is required")
		}
		if err != nil {
			return err
		}
		if u == nil {
			log.Warn("User not found")
			return nil
		}
		log.Info("User found",
			zap.String("id", u.ID.String()),
			zap.String("user_name", u.UserName),
			zap.String("email", u.Email),
			zap.Strings("roles", u.Roles),
			zap.String("tenant_id", u.TenantID),
		)
		return nil

	case "delete-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "user id")
		_ = fs.Parse(args)
		if *id == "" {
			return fmt.Errorf("-id is required")
		}

		u, err := users.FindByID(ctx, *id)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("user %s not found", *id)
		}
		if err := users.Delete(ctx, u); err != nil {
			return err
		}
		log.Info("User deleted", zap.String("id", *id))
		return nil

	case "add-role":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "user id")
		roleName := fs.String("role", "", "role name")
		_ = fs.Parse(args)
		if *id == "" || *roleName == "" {
			return fmt.Errorf("-id and -role are required")
		}

		u, err := users.FindByID(ctx, *id)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("user %s not found", *id)
		}
		if err := users.AddToRole(u, *roleName); err != nil {
			return err
		}
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		log.Info("Role added", zap.String("id", *id), zap.String("role", *roleName))
		return nil

	case "create-role":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		name := fs.String("name", "", "role name")
		_ = fs.Parse(args)
		if *name == "" {
			return fmt.Errorf("-name is required")
		}

		r := role.NewRole(*name)
		if err := roles.Create(ctx, r); err != nil {
			return err
		}
		log.Info("Role created", zap.String("id", r.ID.String()), zap.String("name", r.Name))
		return nil

	case "find-role":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		name := fs.String("name", "", "role name")
		_ = fs.Parse(args)
		if *name == "" {
			return fmt.Errorf("-name is required")
		}

		r, err := roles.FindByName(ctx, *name)
		if err != nil {
			return err
		}
		if r == nil {
			log.Warn("Role not found", zap.String("name", *name))
			return nil
		}
		log.Info("Role found", zap.String("id", r.ID.String()), zap.String("name", r.Name))
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}
