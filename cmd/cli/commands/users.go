package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/pkg/api/v1/handlers"
)

// User flag names
const (
	flagUserID    = "id"
	flagUsername  = "username"
	flagUserEmail = "email"
	flagUserRole  = "role"
	flagUserLimit = "limit"
)

// GetUsersCmd returns the users command tree
func GetUsersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	usersCmd.AddCommand(getUserCmd())
	usersCmd.AddCommand(listUsersCmd())
	usersCmd.AddCommand(createUserCmd())
	usersCmd.AddCommand(deleteUserCmd())

	return usersCmd
}

func getUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a specific user by ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString(flagUserID)

			user, err := apiClient.GetUserByID(context.Background(), id)
			if err != nil {
				return fmt.Errorf("error getting user: %w", err)
			}
			return printJSON(user)
		},
	}
	cmd.Flags().StringP(flagUserID, "i", "", "User ID")
	_ = cmd.MarkFlagRequired(flagUserID)
	return cmd
}

func listUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt(flagUserLimit)

			users, err := apiClient.GetUsers(context.Background(), &models.ListOptions{Limit: limit})
			if err != nil {
				return fmt.Errorf("error listing users: %w", err)
			}
			return printJSON(users)
		},
	}
	cmd.Flags().Int(flagUserLimit, 0, "Limit the number of users returned")
	return cmd
}

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString(flagUsername)
			email, _ := cmd.Flags().GetString(flagUserEmail)
			role, _ := cmd.Flags().GetString(flagUserRole)

			user, err := apiClient.CreateUser(context.Background(), handlers.UserCreateParams{
				Username: username,
				Email:    email,
				Role:     role,
			})
			if err != nil {
				return fmt.Errorf("error creating user: %w", err)
			}
			return printJSON(user)
		},
	}
	cmd.Flags().StringP(flagUsername, "u", "", "Username")
	cmd.Flags().StringP(flagUserEmail, "e", "", "Email address")
	cmd.Flags().StringP(flagUserRole, "r", "", "Role (customer, contractor, admin)")
	_ = cmd.MarkFlagRequired(flagUsername)
	return cmd
}

func deleteUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString(flagUserID)

			if err := apiClient.DeleteUser(context.Background(), id); err != nil {
				return fmt.Errorf("error deleting user: %w", err)
			}
			fmt.Println("user deleted")
			return nil
		},
	}
	cmd.Flags().StringP(flagUserID, "i", "", "User ID")
	_ = cmd.MarkFlagRequired(flagUserID)
	return cmd
}
