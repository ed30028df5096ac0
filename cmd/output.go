package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/apictl/response"
)

// writeValue prints v as indented JSON. Files print their path.
func writeValue(w io.Writer, v any) error {
	if file, ok := v.(*response.File); ok {
		_, err := fmt.Fprintln(w, file.Path)
		return err
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// unbreak turns LineBreak markers back into newlines for terminal output
func unbreak(s string) string {
	return strings.ReplaceAll(s, response.LineBreak, "\n")
}

// selectItems applies the --filter and --where options to a deserialized
// collection
func selectItems(ctx context.Context, v any, name, where string) (any, error) {
	if name == "" && where == "" {
		return v, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("filtering requires an Array return type, got %T", v)
	}

	var err error
	if name != "" {
		items, err = filters.EvaluateFilter(ctx, name, items)
		if err != nil {
			return nil, err
		}
	}
	if where != "" {
		items, err = filters.Evaluate(ctx, where, items)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug().Int("matches", len(items)).Msg("Filtered results")
	return items, nil
}
