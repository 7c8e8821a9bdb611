package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	harukiConfig "hallin-site/config"
	"hallin-site/utils"
	harukiMongo "hallin-site/utils/database/mongo"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	submissionsAction string
	submissionsLimit  int64
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List the most recent archived form submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if submissionsAction != "" {
			if _, err := utils.ParseActionName(submissionsAction); err != nil {
				return err
			}
		}
		cfg, err := harukiConfig.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.MongoDB.URL == "" {
			return fmt.Errorf("mongodb.url is not configured")
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		mgr, err := harukiMongo.NewMongoDBManager(ctx, cfg.MongoDB.URL, cfg.MongoDB.DB, cfg.MongoDB.Submissions)
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close(context.Background()) }()
		subs, err := mgr.RecentSubmissions(ctx, submissionsAction, submissionsLimit)
		if err != nil {
			return err
		}
		printSubmissions(cmd.OutOrStdout(), subs)
		return nil
	},
}

func init() {
	submissionsCmd.Flags().StringVarP(&submissionsAction, "action", "a", "", "only show submissions of this action")
	submissionsCmd.Flags().Int64VarP(&submissionsLimit, "limit", "n", 20, "number of submissions to show")
}

func printSubmissions(w io.Writer, subs []harukiMongo.Submission) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"When", "Action", "Client IP", "Fields"})
	table.SetAutoWrapText(false)
	for _, s := range subs {
		keys := make([]string, 0, len(s.Fields))
		for k, v := range s.Fields {
			if v != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		table.Append([]string{humanize.Time(s.CreatedAt), s.Action, s.ClientIP, strings.Join(keys, ", ")})
	}
	table.Render()
}
