package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/apictl/petstore"
)

var (
	petStatuses []string
	petWhere    string
)

// petCmd groups the petstore commands
var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Work with the petstore API",
}

var petGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Get pets by ID",
	Long:  `Get one or more pets by ID. Multiple IDs are fetched concurrently, bounded by api.concurrency.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPetGet,
}

var petFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Find pets by status",
	RunE:  runPetFind,
}

var petInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show pet counts by status",
	Args:  cobra.NoArgs,
	RunE:  runPetInventory,
}

var petImageCmd = &cobra.Command{
	Use:   "image <id>",
	Short: "Download a pet's image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPetImage,
}

func init() {
	rootCmd.AddCommand(petCmd)
	petCmd.AddCommand(petGetCmd, petFindCmd, petInventoryCmd, petImageCmd)

	petFindCmd.Flags().StringSliceVarP(&petStatuses, "status", "s", []string{petstore.StatusAvailable}, "statuses to match (available, pending, sold)")
	petFindCmd.Flags().StringVarP(&petWhere, "where", "w", "", "filter expression applied to the results")
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pet ID %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runPetGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		pet, err := petAPI.GetPetByID(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		return writeValue(cmd.OutOrStdout(), pet)
	}

	pets, err := petAPI.GetPetsByID(cmd.Context(), ids)
	if err != nil {
		return err
	}
	return writeValue(cmd.OutOrStdout(), pets)
}

func runPetFind(cmd *cobra.Command, args []string) error {
	pets, err := petAPI.FindPetsByStatus(cmd.Context(), petStatuses...)
	if err != nil {
		return err
	}

	items := make([]any, len(pets))
	for i, pet := range pets {
		items[i] = pet
	}
	result, err := selectItems(cmd.Context(), items, "", petWhere)
	if err != nil {
		return err
	}
	return writeValue(cmd.OutOrStdout(), result)
}

func runPetInventory(cmd *cobra.Command, args []string) error {
	inventory, err := petAPI.GetInventory(cmd.Context())
	if err != nil {
		return err
	}
	return writeValue(cmd.OutOrStdout(), inventory)
}

func runPetImage(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	file, err := petAPI.DownloadPetImage(cmd.Context(), ids[0])
	if err != nil {
		return err
	}
	if file == nil {
		return fmt.Errorf("pet %d has no image", ids[0])
	}
	return writeValue(cmd.OutOrStdout(), file)
}
