package cmd

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/s0up4200/apictl/client"
)

var (
	getQuery       map[string]string
	getWhere       string
	getFilter      string
	getShowHeaders bool
	getRaw         bool
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "GET a path and print the deserialized response",
	Long: `GET a path relative to the configured API URL and deserialize the body
against --type. Array results can be narrowed with --where or a named
filter from the config.`,
	Example: `  apictl get /pet/findByStatus -q status=available -t 'Array<Pet>' --where 'hasTag("friendly")'
  apictl get /pet/findByStatus -t 'Array<Pet>' --where 'hasPrefix(name, env("PET_PREFIX"))'
  apictl get /store/inventory -t 'Hash<String, Integer>'`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringToStringVarP(&getQuery, "query", "q", nil, "query parameters (key=value)")
	getCmd.Flags().StringVarP(&getWhere, "where", "w", "", "filter expression applied to array results")
	getCmd.Flags().StringVarP(&getFilter, "filter", "f", "", "named filter from the config")
	getCmd.Flags().BoolVar(&getShowHeaders, "headers", false, "print response headers")
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "print the pretty-printed body without deserializing")
}

func runGet(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	for k, v := range getQuery {
		query.Set(k, v)
	}

	req := client.Request{
		Method:     http.MethodGet,
		Path:       args[0],
		Query:      query,
		ReturnType: returnType,
	}
	if getRaw {
		req.ReturnType = ""
	}

	value, resp, err := apiClient.Call(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if getShowHeaders {
		fmt.Fprintf(out, "%d %s\n%s\n", resp.StatusCode(), resp.Status(), unbreak(resp.PrettyHeaders()))
	}

	if getRaw {
		if pretty, ok := resp.PrettyBody(); ok {
			_, err = fmt.Fprintln(out, unbreak(pretty))
			return err
		}
		_, err = out.Write(resp.Body())
		return err
	}

	value, err = selectItems(cmd.Context(), value, getFilter, getWhere)
	if err != nil {
		return err
	}
	return writeValue(out, value)
}
