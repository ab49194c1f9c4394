package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/ui"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List known users",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

var usersJSON bool

func init() {
	rootCmd.AddCommand(usersCmd)

	usersCmd.Flags().BoolVar(&usersJSON, "json", false, "Output as JSON")
}

func runUsers(cmd *cobra.Command, args []string) error {
	directory, err := openDirectory()
	if err != nil {
		return err
	}

	users, err := directory.ListUsers()
	if err != nil {
		return err
	}

	if usersJSON {
		return encodeJSONToStdout(users)
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "NAME", "EMAIL", "ROLE", "WORK TYPE"}, len(users))
	for _, user := range users {
		builder.AddRow([]string{
			ui.HighlightID(user.ID),
			user.Name,
			user.Email,
			string(user.Role),
			string(user.WorkType),
		})
	}
	fmt.Print(builder.String())
	return nil
}
