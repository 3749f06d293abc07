package main

import (
	"fmt"
	"strconv"

	"darb_pms/internal/model"
	"darb_pms/internal/repository"
	"darb_pms/internal/service"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with an explicit role",
	Long: `Create an account with an explicit role. Use this to seed the
first CEO or admin account:

	pmsctl user create --username ceo --password '...' --role ceo
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		// No tokens are issued here, so the service gets no JWT utility.
		svc := service.NewAuthService(repository.NewUserRepository(pool), nil, "")
		user, err := svc.CreateUser(cmd.Context(), username, password, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d, role %s)\n", user.Username, user.ID, user.Role)
		return nil
	},
}

var userSetRoleCmd = &cobra.Command{
	Use:   "set-role <user-id> <role>",
	Short: "Change the role of an existing account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := service.NewAuthService(repository.NewUserRepository(pool), nil, "")
		user, err := svc.ChangeRole(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %q is now %s\n", user.Username, user.Role)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		users, err := service.NewAuthService(repository.NewUserRepository(pool), nil, "").ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, u := range users {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd, userSetRoleCmd, userListCmd)

	userCreateCmd.Flags().String("username", "", "account username")
	userCreateCmd.Flags().String("password", "", "account password")
	userCreateCmd.Flags().String("role", model.RoleUser, "one of user, admin, ceo")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")
}
