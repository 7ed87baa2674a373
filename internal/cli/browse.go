package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/formatter"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui"
)

var listingsCategory string

func newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Print featured listings, jobs and chats",
		Long: `Print the home feed without opening the interactive client: featured
listings, open jobs and recent conversations.

This is what ethio prints when stdout is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	return withApp(appOptions{}, func(a *app) error {
		cat := a.sess.Catalog()
		return writeReport(cmd, a, &formatter.Report{
			Title:    "ETHIO",
			Listings: cat.Listings,
			Jobs:     cat.Jobs,
			Chats:    cat.Chats,
			Saved:    savedMap(a.sess),
		})
	})
}

func newListingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings [query]",
		Short: "List marketplace listings",
		Long: `List marketplace listings, optionally narrowed to a category or
matched against a search query.

Examples:
  ethio listings
  ethio listings --category cars
  ethio listings iphone -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runListings,
	}

	cmd.Flags().StringVar(&listingsCategory, "category", "", "category (items, cars, properties, jobs, services)")

	return cmd
}

func runListings(cmd *cobra.Command, args []string) error {
	return withApp(appOptions{}, func(a *app) error {
		cat := a.sess.Catalog()
		listings := cat.Listings
		title := "Listings"

		if listingsCategory != "" {
			c, err := catalog.ParseCategory(listingsCategory)
			if err != nil {
				return err
			}
			listings = cat.ByCategory(c)
			title = c.DisplayName()
		}
		if len(args) == 1 {
			listings = filterListings(listings, cat.Search(args[0]))
			title = fmt.Sprintf("%s matching %q", title, args[0])
		}

		return writeReport(cmd, a, &formatter.Report{
			Title:    title,
			Listings: listings,
			Saved:    savedMap(a.sess),
		})
	})
}

// filterListings keeps the listings of base that also appear in match
func filterListings(base, match []catalog.Listing) []catalog.Listing {
	ids := make(map[string]bool, len(match))
	for _, l := range match {
		ids[l.ID] = true
	}
	var out []catalog.Listing
	for _, l := range base {
		if ids[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

func newJobsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List open jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(appOptions{}, func(a *app) error {
				return writeReport(cmd, a, &formatter.Report{
					Title: "Jobs",
					Jobs:  a.sess.Catalog().Jobs,
				})
			})
		},
	}
}

func newChatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List recent conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(appOptions{}, func(a *app) error {
				cat := a.sess.Catalog()
				title := "Messages"
				if unread := cat.UnreadCount(); unread > 0 {
					title = fmt.Sprintf("Messages (%d unread)", unread)
				}
				return writeReport(cmd, a, &formatter.Report{
					Title: title,
					Chats: cat.Chats,
				})
			})
		},
	}
}

// saved commands always use the durable set; an in-memory set would be
// empty on every invocation
func newSavedCommand() *cobra.Command {
	savedCmd := &cobra.Command{
		Use:   "saved",
		Short: "List or change saved listings",
		Args:  cobra.NoArgs,
		RunE:  runSavedList,
	}

	savedCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved listings",
		Args:  cobra.NoArgs,
		RunE:  runSavedList,
	})
	savedCmd.AddCommand(&cobra.Command{
		Use:   "toggle ID",
		Short: "Save a listing, or remove it when already saved",
		Args:  cobra.ExactArgs(1),
		RunE:  runSavedToggle,
	})

	return savedCmd
}

func runSavedList(cmd *cobra.Command, args []string) error {
	return withApp(appOptions{persistSaved: true}, func(a *app) error {
		return writeReport(cmd, a, &formatter.Report{
			Title:    "Saved",
			Listings: a.sess.SavedListings(),
			Saved:    savedMap(a.sess),
		})
	})
}

func runSavedToggle(cmd *cobra.Command, args []string) error {
	return withApp(appOptions{persistSaved: true}, func(a *app) error {
		id := args[0]
		l, ok := a.sess.FindListing(id)
		if !ok {
			return fmt.Errorf("no listing with id %q", id)
		}
		saved, err := a.sess.ToggleSave(id)
		if err != nil {
			return fmt.Errorf("failed to update saved listings: %w", err)
		}

		if saved {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", emoji.GetEmoji("saved"), l.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", emoji.GetEmoji("unsaved"), l.Title)
		}
		return nil
	})
}

func newThemeCommand() *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the stored theme",
		Args:  cobra.NoArgs,
		RunE:  runThemeGet,
	}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE:  runThemeGet,
	})
	themeCmd.AddCommand(&cobra.Command{
		Use:       "set dark|light",
		Short:     "Store a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			isDark, err := session.ParseThemeName(args[0])
			if err != nil {
				return err
			}
			return changeTheme(cmd, func(t *session.Theme) error { return t.SetTheme(isDark) })
		},
	})
	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeTheme(cmd, (*session.Theme).Toggle)
		},
	})

	return themeCmd
}

func runThemeGet(cmd *cobra.Command, args []string) error {
	return withApp(appOptions{}, func(a *app) error {
		fmt.Fprintln(cmd.OutOrStdout(), themeLine(a.sess.Theme()))
		return nil
	})
}

func changeTheme(cmd *cobra.Command, change func(*session.Theme) error) error {
	return withApp(appOptions{}, func(a *app) error {
		theme := a.sess.Theme()
		if err := change(theme); err != nil {
			return fmt.Errorf("failed to store theme: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), themeLine(theme))
		return nil
	})
}

func themeLine(t *session.Theme) string {
	if t.IsDark() {
		return emoji.GetEmoji("moon") + " " + t.Name()
	}
	return emoji.GetEmoji("sun") + " " + t.Name()
}

// withApp opens the app for the duration of fn
func withApp(opts appOptions, fn func(a *app) error) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func writeReport(cmd *cobra.Command, a *app, r *formatter.Report) error {
	format := outputFmt
	if format == "" {
		format = a.cfg.Output.DefaultFormat
	}
	f, err := formatter.New(format, !ui.IsColorDisabled())
	if err != nil {
		return err
	}

	out, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func savedMap(sess *session.Session) map[string]bool {
	ids := sess.Saved().IDs()
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
