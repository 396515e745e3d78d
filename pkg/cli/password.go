package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/password"
)

var passwordLength int

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate a student password",
	Long: `Password prints a random password containing at least one uppercase
letter, one lowercase letter and one digit. Length must be between
4 and 50.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := password.Generate(passwordLength)
		if err != nil {
			return err
		}
		printResult(map[string]string{"password": pw}, func() {
			fmt.Println(pw)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.Flags().IntVar(&passwordLength, "length", 12, "password length")
}
