package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/sift/internal/config"
	"github.com/Iron-Ham/sift/internal/errors"
	"github.com/Iron-Ham/sift/internal/filter"
	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/rule"
)

// stagedOp is one --apply, --remove, --toggle or --reset flag.
type stagedOp struct {
	kind    string
	name    string
	payload any
}

// opFlag appends to a shared list so operations from different flags keep
// their command-line order.
type opFlag struct {
	kind string
	ops  *[]stagedOp
}

func (f *opFlag) String() string { return "" }

func (f *opFlag) Type() string { return "name[=payload]" }

func (f *opFlag) Set(value string) error {
	name, payload := rule.SplitAssignment(value)
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("missing filter name").WithField("--" + f.kind).WithValue(value)
	}
	*f.ops = append(*f.ops, stagedOp{kind: f.kind, name: name, payload: payload})
	return nil
}

// resetFlag stages a Reset at its position among the other operations.
type resetFlag struct {
	ops *[]stagedOp
}

func (f *resetFlag) String() string { return "false" }

func (f *resetFlag) Type() string { return "bool" }

func (f *resetFlag) Set(value string) error {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	if on {
		*f.ops = append(*f.ops, stagedOp{kind: "reset"})
	}
	return nil
}

func newRunCmd() *cobra.Command {
	var (
		ops    []stagedOp
		format string
		count  bool
	)

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Stage filter operations, activate them and print the result",
		Long: `Run loads the dataset, stages every --apply, --remove, --toggle and
--reset in the order given, activates once and prints the matching records.
--reset deactivates the filters staged before it.

A payload after "=" overrides the configured value of the filter:

  sift run books.json --apply after=1950 --toggle fantasy
  sift run --apply 'genre=["Fantasy","Science Fiction"]' --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { ops = nil }()
			if format == "" {
				format = viper.GetString("output.format")
			}
			if !slices.Contains(config.ValidOutputFormats(), format) {
				return errors.NewValidationError("must be one of: "+strings.Join(config.ValidOutputFormats(), ", ")).
					WithField("--format").WithValue(format)
			}
			return runFilters(cmd, args, ops, format, count)
		},
	}

	flags := cmd.Flags()
	flags.Var(&opFlag{kind: "apply", ops: &ops}, "apply", "activate a filter, optionally with a payload (repeatable)")
	flags.Var(&opFlag{kind: "remove", ops: &ops}, "remove", "deactivate a filter (repeatable)")
	flags.Var(&opFlag{kind: "toggle", ops: &ops}, "toggle", "flip a filter (repeatable)")
	flags.VarPF(&resetFlag{ops: &ops}, "reset", "", "deactivate every filter staged so far").NoOptDefVal = "true"
	flags.StringVarP(&format, "format", "f", "", "output format: text or json (default from output.format)")
	flags.BoolVar(&count, "count", false, "print only the number of matching records")

	return cmd
}

func runFilters(cmd *cobra.Command, args []string, ops []stagedOp, format string, count bool) error {
	s, err := openSession(cmd.Context(), afero.NewOsFs(), args)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	descriptors, err := rule.CompileAll(s.cfg.Filters)
	if err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}

	m := filter.Init(s.records, descriptors, filter.WithLogger(s.logger))

	out := cmd.OutOrStdout()
	var writeErr error
	id := m.Subscribe(func(items []record.Record) {
		if count {
			_, writeErr = fmt.Fprintln(out, len(items))
			return
		}
		writeErr = writeRecords(out, items, format)
	})
	defer m.Unsubscribe(id)

	for _, err := range unknownFilters(m, ops) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", errors.GetSeverity(err), err)
	}

	for _, op := range ops {
		switch op.kind {
		case "reset":
			m.Reset()
		case "apply":
			m.Apply(op.name, op.payload)
		case "remove":
			m.Remove(op.name, op.payload)
		case "toggle":
			m.Toggle(op.name, op.payload)
		}
	}
	m.Activate()

	s.logger.Info("filters activated",
		"active", m.ActiveNames(),
		"matched", len(m.Filtered()),
		"total", len(s.records))
	return writeErr
}

// unknownFilters reports each operation target the manager has no filter
// for, once per name.
func unknownFilters(m *filter.Manager[record.Record], ops []stagedOp) []error {
	var seen []string
	var errs []error
	for _, op := range ops {
		if op.kind == "reset" || m.GetFilter(op.name).State != nil || slices.Contains(seen, op.name) {
			continue
		}
		seen = append(seen, op.name)
		errs = append(errs, errors.NewNotFoundError("filter", op.name))
	}
	return errs
}

func writeRecords(w io.Writer, items []record.Record, format string) error {
	if format == "json" {
		if items == nil {
			items = []record.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, r := range items {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}
