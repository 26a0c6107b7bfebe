package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/temcen/anirec/internal/catalog"
	"github.com/temcen/anirec/internal/recommender"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List genre categories and curated lists",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print categories as JSON")
}

type catalogEntry struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Items []int  `json:"items"`
}

func catalogEntries() []catalogEntry {
	var entries []catalogEntry
	for _, c := range catalog.Categories() {
		entries = append(entries, catalogEntry{Name: c.Name, Kind: "category", Items: c.Items})
	}
	entries = append(entries,
		catalogEntry{Name: recommender.SectionHiddenGems, Kind: "curated", Items: catalog.HiddenGems()},
		catalogEntry{Name: recommender.SectionTrending, Kind: "curated", Items: catalog.Trending()},
		catalogEntry{Name: recommender.SectionClassics, Kind: "curated", Items: catalog.Classics()},
	)
	return entries
}

func runCatalog(cmd *cobra.Command, args []string) error {
	entries := catalogEntries()
	if catalogJSON {
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tITEMS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Name, e.Kind, len(e.Items))
	}
	fmt.Fprintf(tw, "%s\t%s\t%d\n", "Similarity table", "curated", len(catalog.SimilarityTable()))
	return tw.Flush()
}
