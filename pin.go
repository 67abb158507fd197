package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"librarybox.klederson.com/internal/geo"
	"librarybox.klederson.com/internal/geocode"
	"librarybox.klederson.com/internal/pinning"
	"librarybox.klederson.com/internal/store"
)

var flagBoxType string

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Check and pin box locations",
}

var pinCheckCmd = &cobra.Command{
	Use:   "check <address>",
	Short: "Check whether an address can be pinned",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *pinning.Service, _ *store.SQLiteStore) error {
			c, err := svc.Check(ctx, strings.Join(args, " "))
			if err != nil {
				return eris.Wrap(err, "pin check")
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Message)
			return nil
		})
	},
}

var pinLocateCmd = &cobra.Command{
	Use:   "locate <lat,lng>",
	Short: "Check the address at a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := geo.ParseLocation(args[0])
		if err != nil {
			return eris.Wrap(err, "pin locate")
		}
		return withService(cmd, func(ctx context.Context, svc *pinning.Service, _ *store.SQLiteStore) error {
			c, err := svc.CheckLocation(ctx, loc)
			if err != nil {
				return eris.Wrap(err, "pin locate")
			}
			if c.Candidate != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", c.Candidate.Address, c.Candidate.Location)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Message)
			return nil
		})
	},
}

var pinAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Pin a new box at an address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		boxType, err := pinning.ParseBoxType(flagBoxType)
		if err != nil {
			return err
		}
		return withService(cmd, func(ctx context.Context, svc *pinning.Service, _ *store.SQLiteStore) error {
			c, err := svc.Check(ctx, strings.Join(args, " "))
			if err != nil {
				return eris.Wrap(err, "pin add: check")
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Message)
			if !c.CanPin() {
				return eris.Wrapf(pinning.ErrNotPinnable, "pin add: %s", c.Verdict)
			}

			outcome, rec, err := svc.Submit(ctx, c, boxType)
			if err != nil {
				return eris.Wrapf(err, "pin add: %s", outcome)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s box %s at %s\n", rec.BoxType, rec.ID, rec.Location)
			return nil
		})
	},
}

var pinRetypeCmd = &cobra.Command{
	Use:   "retype <id> <Public|Private>",
	Short: "Change the type of a pinned box",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		boxType, err := pinning.ParseBoxType(args[1])
		if err != nil {
			return err
		}
		return withService(cmd, func(ctx context.Context, svc *pinning.Service, _ *store.SQLiteStore) error {
			outcome, rec, err := svc.SetBoxType(ctx, args[0], boxType)
			if err != nil {
				return eris.Wrapf(err, "pin retype: %s", outcome)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Box %s is now %s (version %d)\n", rec.ID, rec.BoxType, rec.Version)
			return nil
		})
	},
}

var pinListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pinned boxes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, _ *pinning.Service, st *store.SQLiteStore) error {
			recs, err := st.List(ctx)
			if err != nil {
				return eris.Wrap(err, "pin list")
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tLOCATION\tADDRESS")
			for _, r := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.BoxType, r.Location, r.Address)
			}
			return w.Flush()
		})
	},
}

func init() {
	pinAddCmd.Flags().StringVar(&flagBoxType, "type", string(pinning.BoxPublic), "Box type: Public or Private")
	pinCmd.AddCommand(pinCheckCmd, pinLocateCmd, pinAddCmd, pinRetypeCmd, pinListCmd)
	rootCmd.AddCommand(pinCmd)
}

// withService opens the pin database and geocoder for one command.
func withService(cmd *cobra.Command, fn func(context.Context, *pinning.Service, *store.SQLiteStore) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return eris.Wrap(err, "open store")
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return eris.Wrap(err, "migrate store")
	}

	g := geocode.NewNominatim(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithUserAgent(cfg.Geocode.UserAgent),
		geocode.WithRateLimit(cfg.Geocode.RateLimit),
	)
	return fn(ctx, pinning.NewService(g, st), st)
}
