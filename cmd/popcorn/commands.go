package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amaumene/popcorn/internal/controllers"
	"github.com/amaumene/popcorn/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func newSearchCommand() *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search OMDb by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(false)
			if err != nil {
				return err
			}
			defer env.Close()

			search := controllers.NewSearchController(env.client, env.cfg.MinQueryLength, env.metrics, env.logger)
			defer search.Close()
			switch t := models.MediaType(mediaType); t {
			case models.MediaTypeAny, models.MediaTypeMovie, models.MediaTypeSeries, models.MediaTypeEpisode:
				search.SetMediaType(t)
			default:
				return fmt.Errorf("unknown type %q", mediaType)
			}

			query := strings.Join(args, " ")
			fetch := search.SetQuery(cmd.Context(), query)
			if fetch == nil {
				return fmt.Errorf("query must be at least %d characters", env.cfg.MinQueryLength)
			}
			search.Resolve(fetch())

			st := search.State()
			if st.Status == models.FetchError {
				return errors.New(st.Error)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d results\n", len(st.Results))
			for _, movie := range st.Results {
				fmt.Fprintf(out, "%s\t%s\t%s\n", movie.ID, movie.Year, movie.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mediaType, "type", "t", "", "restrict results to movie, series or episode")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <imdb-id>",
		Short: "Show the details of a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(false)
			if err != nil {
				return err
			}
			defer env.Close()

			detail := controllers.NewDetailController(env.client, env.metrics, env.logger)
			defer detail.Close()
			detail.Resolve(detail.Select(cmd.Context(), args[0])())

			st := detail.State()
			if st.Status != models.FetchSuccess {
				return errors.New(st.Error)
			}

			d := st.Detail
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, d.Title)
			fmt.Fprintf(out, "%s • %s\n", d.ReleaseDate, d.Runtime)
			fmt.Fprintln(out, d.Genre)
			fmt.Fprintf(out, "⭐ %s IMDb rating\n", formatRating(d.RatingExternal))
			if entry, ok := env.watched().Get().Find(d.ID); ok {
				fmt.Fprintf(out, "You rated the movie %d\n", entry.RatingUser)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, d.Plot)
			fmt.Fprintf(out, "Starring %s\n", d.Actors)
			fmt.Fprintf(out, "Directed by %s\n", d.Director)
			return nil
		},
	}
}

func newWatchedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watched",
		Short: "Manage the watched list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the watched list and its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(false)
			if err != nil {
				return err
			}
			defer env.Close()

			list := env.watched().Get()
			s := list.Summary()
			out := cmd.OutOrStdout()
			printer.Fprintf(out, "%d movies, IMDb %.2f, yours %.2f, %.0f min\n",
				s.Count, s.AvgExternalRating, s.AvgUserRating, s.AvgRuntime)
			for _, entry := range list {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\n", entry.ID, entry.Title, formatRating(entry.RatingExternal), entry.RatingUser)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <imdb-id>",
		Short: "Remove a movie from the watched list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(false)
			if err != nil {
				return err
			}
			defer env.Close()

			watched := env.watched()
			if !watched.Get().Contains(args[0]) {
				return fmt.Errorf("%s is not in the watched list", args[0])
			}
			watched.Update(func(l models.WatchedList) models.WatchedList {
				return l.Remove(args[0])
			})
			env.logger.WithField("id", args[0]).Info("Removed movie from watched list")
			return nil
		},
	})

	return cmd
}

func formatRating(r *float64) string {
	if r == nil {
		return "N/A"
	}
	return printer.Sprintf("%.1f", *r)
}
