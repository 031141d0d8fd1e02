package fetch

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"animix-api/cmd"
)

var fetchCmd = &cobra.Command{
	Use:         "fetch",
	Short:       "Run one aggregation and print the result as JSON",
	Annotations: cmd.MachineOutput(),
}

var scheduleCmd = &cobra.Command{
	Use:         "schedule",
	Short:       "Episodes aired in the past week",
	Long:        `Lists episodes aired in the trailing seven days, optionally only those airing on --day.`,
	Annotations: cmd.MachineOutput(),
	RunE:        runSchedule,
}

var weeklyTopCmd = &cobra.Command{
	Use:         "weekly-top",
	Short:       "Most popular episodes of the past week",
	Annotations: cmd.MachineOutput(),
	RunE:        runWeeklyTop,
}

var mangaLatestCmd = &cobra.Command{
	Use:         "manga-latest",
	Short:       "Most recently published manga chapters",
	Annotations: cmd.MachineOutput(),
	RunE:        runMangaLatest,
}

var (
	day   string
	limit int
)

func init() {
	cmd.RootCmd.AddCommand(fetchCmd)
	fetchCmd.AddCommand(scheduleCmd, weeklyTopCmd, mangaLatestCmd)

	scheduleCmd.Flags().StringVar(&day, "day", "", "weekday to filter by, e.g. monday")
	mangaLatestCmd.Flags().IntVar(&limit, "limit", 12, "number of chapters")
}

func runSchedule(c *cobra.Command, _ []string) error {
	result, err := cmd.NewServices(cmd.Cfg).Anime.AnimeSchedule(c.Context(), day)
	if err != nil {
		return err
	}
	return printJSON(c, result)
}

func runWeeklyTop(c *cobra.Command, _ []string) error {
	return printJSON(c, cmd.NewServices(cmd.Cfg).Anime.TopEpisodesOfWeek(c.Context()))
}

func runMangaLatest(c *cobra.Command, _ []string) error {
	result, err := cmd.NewServices(cmd.Cfg).Manga.LatestChapters(c.Context(), limit)
	if err != nil {
		return err
	}
	return printJSON(c, result)
}

func printJSON(c *cobra.Command, v any) error {
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
