package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <feeding_id>",
	Aliases: []string{"delete"},
	Short:   "Delete a logged feeding",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.scope.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("🗑️  Deleted feeding %s\n", args[0])
		return nil
	}),
}
