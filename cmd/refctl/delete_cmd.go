package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

type selectionFlags struct {
	ids       []string
	itemsFile string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.ids, "id", nil, "Record as id or id:version (repeatable)")
	cmd.Flags().StringVar(&f.itemsFile, "items", "", "JSON file with [{id,name,code,version}], - for stdin")
}

// candidates merges --items and --id in that order.
func (f *selectionFlags) candidates(stdin io.Reader) ([]bulkdelete.Candidate, error) {
	var items []bulkdelete.Candidate
	if f.itemsFile != "" {
		var r io.Reader = stdin
		if f.itemsFile != "-" {
			file, err := os.Open(f.itemsFile)
			if err != nil {
				return nil, err
			}
			defer file.Close()
			r = file
		}
		if err := json.NewDecoder(r).Decode(&items); err != nil {
			return nil, fmt.Errorf("decode --items: %w", err)
		}
	}
	for _, raw := range f.ids {
		c, err := parseCandidate(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	for i, c := range items {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("item %d has no id", i)
		}
	}
	return items, nil
}

func parseCandidate(raw string) (bulkdelete.Candidate, error) {
	id, version, hasVersion := strings.Cut(raw, ":")
	c := bulkdelete.Candidate{ID: strings.TrimSpace(id)}
	if hasVersion {
		v, err := strconv.ParseInt(version, 10, 64)
		if err != nil {
			return c, fmt.Errorf("invalid version in --id %q", raw)
		}
		c.Version = v
	}
	return c, nil
}

func newCheckDeleteCmd(root *rootOptions) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "check-delete <resource-path>",
		Short: "Run the side-effect free conflict check for a selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := sel.candidates(cmd.InOrStdin())
			if err != nil {
				return err
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			res, err := refapi.NewResource[json.RawMessage](client, args[0]).CheckDeleteMultiple(cmd.Context(), items)
			if err != nil {
				return &exitError{code: exitCheckFailed, msg: err.Error()}
			}
			if err := writeJSON(cmd.OutOrStdout(), res.Report); err != nil {
				return err
			}
			switch {
			case !res.Success:
				return &exitError{code: exitCheckFailed, msg: "conflict check was not successful"}
			case !res.Report.Clean():
				return &exitError{code: exitConflict, msg: "selection has conflicts"}
			}
			return nil
		},
	}
	sel.register(cmd)
	return cmd
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "delete <resource-path>",
		Short: "Check then delete a selection; nothing is deleted when the check reports conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := sel.candidates(cmd.InOrStdin())
			if err != nil {
				return err
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			resource := refapi.NewResource[json.RawMessage](client, args[0])
			res := runDelete(cmd.Context(), resource, args[0], items)
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			return outcomeError(res.Outcome)
		},
	}
	sel.register(cmd)
	return cmd
}

type deleteOutput struct {
	bulkdelete.Result
	Notifications []bulkdelete.Notification `json:"notifications"`
}

func runDelete(ctx context.Context, gateway *refapi.Resource[json.RawMessage], name string, items []bulkdelete.Candidate) deleteOutput {
	collector := &bulkdelete.Collector{}
	protocol := bulkdelete.New(gateway, bulkdelete.Options{
		Resource:  name,
		DeleteURL: gateway.DeleteURL(),
	})
	res := protocol.Run(ctx, items, collector.Hooks())
	notifications := collector.Notifications()
	if notifications == nil {
		notifications = []bulkdelete.Notification{}
	}
	return deleteOutput{Result: res, Notifications: notifications}
}

func outcomeError(outcome bulkdelete.Outcome) error {
	switch outcome {
	case bulkdelete.OutcomeConflict:
		return &exitError{code: exitConflict, msg: "selection has conflicts, nothing was deleted"}
	case bulkdelete.OutcomeCheckFailed:
		return &exitError{code: exitCheckFailed, msg: "conflict check failed, nothing was deleted"}
	case bulkdelete.OutcomeCommitFailed:
		return &exitError{code: exitCommitFailed, msg: "delete failed"}
	}
	return nil
}
