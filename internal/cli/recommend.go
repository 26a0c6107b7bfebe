package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temcen/anirec/internal/app"
	"github.com/temcen/anirec/internal/config"
	"github.com/temcen/anirec/internal/database"
	"github.com/temcen/anirec/internal/recommender"
	"github.com/temcen/anirec/internal/services"
	"github.com/temcen/anirec/pkg/models"
)

var (
	recLimit  int
	recJSON   bool
	recUserID string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [anime_id=rating ...]",
	Short: "Recommend anime for a rating history",
	Long: `Recommend anime for a rating history.

Ratings are given as anime_id=rating pairs, e.g.

  anirec recommend 5114=10 16498=3

With --user the stored ratings of that user are loaded from the database
first; pairs on the command line are appended to them.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVar(&recLimit, "limit", recommender.DefaultLimit, "maximum items per section")
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "print the recommendation set as JSON")
	recommendCmd.Flags().StringVar(&recUserID, "user", "", "load stored ratings for this user id")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	history, err := parseRatings(args)
	if err != nil {
		return err
	}

	if recUserID != "" {
		stored, err := loadStoredRatings(cmd.Context(), recUserID)
		if err != nil {
			return err
		}
		history = append(stored, history...)
	}

	set := recommender.Recommend(history, recommender.WithLimit(recLimit))
	if recJSON {
		return writeJSON(cmd.OutOrStdout(), set)
	}
	writeSections(cmd.OutOrStdout(), set)
	return nil
}

// parseRatings turns "id=score" arguments into ratings, in argument order.
func parseRatings(args []string) ([]models.Rating, error) {
	ratings := make([]models.Rating, 0, len(args))
	for _, arg := range args {
		idPart, scorePart, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid rating %q: expected anime_id=rating", arg)
		}

		animeID, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil || animeID < 1 {
			return nil, fmt.Errorf("invalid anime id in %q", arg)
		}

		score, err := strconv.Atoi(strings.TrimSpace(scorePart))
		if err != nil || score < services.MinRating || score > services.MaxRating {
			return nil, fmt.Errorf("invalid rating in %q: must be an integer between %d and %d", arg, services.MinRating, services.MaxRating)
		}

		ratings = append(ratings, models.Rating{AnimeID: animeID, Rating: score})
	}
	return ratings, nil
}

func loadStoredRatings(ctx context.Context, rawUserID string) ([]models.Rating, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid --user: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := app.SetupLogger(&cfg.Logging)

	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return services.NewRatingService(db.PG, nil, nil, nil, logger).GetUserRatings(ctx, userID)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeSections(w io.Writer, set models.RecommendationSet) {
	if len(set) == 0 {
		fmt.Fprintln(w, "No recommendations.")
		return
	}
	for _, section := range set {
		ids := make([]string, len(section.Items))
		for i, id := range section.Items {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(w, "%s (%d)\n  %s\n", section.Label, len(section.Items), strings.Join(ids, " "))
	}
}
