package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/internal/db"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/roleinfra"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/rolesrv"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and seed the default roles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("admin-email")
		password, _ := cmd.Flags().GetString("admin-password")
		return runMigrate(cmd.Context(), email, password)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().String("admin-email", "", "create an admin account with this email when it does not exist")
	migrateCmd.Flags().String("admin-password", "", "password for --admin-email")
}

func runMigrate(ctx context.Context, adminEmail, adminPassword string) error {
	cfg, err := loadConfig(config.RequireDatabase)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool); err != nil {
		return err
	}
	logx.Info("Schema applied")

	roleRepo := roleinfra.NewPostgresRoleRepository(pool)
	roles := rolesrv.NewRoleService(roleRepo)
	if err := roles.SeedDefaults(ctx); err != nil {
		return err
	}
	logx.Info("Default roles seeded")

	if adminEmail == "" {
		return nil
	}
	if adminPassword == "" {
		return errx.New("--admin-password is required with --admin-email", errx.TypeValidation)
	}

	admin, err := roles.GetRoleByName(ctx, role.RoleAdmin)
	if err != nil {
		return err
	}
	users := usersrv.NewUserService(userinfra.NewPostgresUserRepository(pool), roleRepo, auth.NewPasswordHasher(bcryptCost))
	_, err = users.CreateUser(ctx, user.CreateUserRequest{
		Name:     "Administrator",
		Email:    adminEmail,
		Password: adminPassword,
		RoleID:   admin.ID,
	})
	switch {
	case errx.IsCode(err, user.CodeEmailAlreadyExists):
		logx.Infof("Admin %s already exists", adminEmail)
	case err != nil:
		return err
	default:
		logx.Infof("Admin %s created", adminEmail)
	}
	return nil
}
