package main

import (
	"fmt"
	"io"
	"strconv"

	harukiConfig "hallin-site/config"
	"hallin-site/utils/content"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var contentDir string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print blog and author statistics for a content directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := contentDir
		if dir == "" {
			dir = harukiConfig.Default().Content.Dir
			if cfg, err := harukiConfig.Load(configPath); err == nil {
				dir = cfg.Content.Dir
			}
		}
		store := content.NewStore(dir)
		if err := store.Reload(); err != nil {
			return fmt.Errorf("load content from %s: %w", dir, err)
		}
		return printStats(cmd.OutOrStdout(), store.Posts(), store.Authors())
	},
}

func init() {
	statsCmd.Flags().StringVarP(&contentDir, "dir", "d", "", "content directory (defaults to content.dir from the config)")
}

func printStats(w io.Writer, posts []content.Post, authors []content.Author) error {
	blogStats := content.CalculateBlogStats(posts)
	authorStats := content.CalculateAuthorStats(authors, posts)

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.Append([]string{"Posts", strconv.Itoa(blogStats.TotalPosts)})
	summary.Append([]string{"Words", blogStats.TotalWords})
	summary.Append([]string{"Read time", blogStats.TotalReadTime})
	summary.Append([]string{"Authors", strconv.Itoa(authorStats.TotalAuthors)})
	summary.Append([]string{"Top contributor", authorStats.TopContributor})
	summary.Render()

	recent := content.RecentPosts(posts, 0)
	if len(recent) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Post", "Published", "Words", "Read time"})
	for _, p := range recent {
		table.Append([]string{
			p.Title,
			humanize.Time(p.PublishedDate),
			humanize.Comma(int64(content.WordCount(p.Body))),
			fmt.Sprintf("%d min", content.CalculateReadTime(p.Body)),
		})
	}
	table.Render()
	return nil
}
