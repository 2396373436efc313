package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/pkg/api/v1/handlers"
)

// Suggestion flag names
const (
	flagSuggestionID   = "id"
	flagSuggestionJob  = "job-id"
	flagSuggestionDate = "date"
	flagSuggestionSlot = "slot"
	flagSuggestionPage = "page"
	flagAccept         = "accept"
	flagDecline        = "decline"
)

// GetSuggestionsCmd returns the suggestions command tree
func GetSuggestionsCmd() *cobra.Command {
	suggestionsCmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Manage alternative reschedule suggestions",
	}

	suggestionsCmd.AddCommand(proposeSuggestionCmd())
	suggestionsCmd.AddCommand(respondSuggestionCmd())
	suggestionsCmd.AddCommand(getSuggestionCmd())
	suggestionsCmd.AddCommand(listSuggestionsCmd())

	return suggestionsCmd
}

func proposeSuggestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose an alternative arrival window for a job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)
			jobID, _ := cmd.Flags().GetUint(flagSuggestionJob)
			date, _ := cmd.Flags().GetString(flagSuggestionDate)
			slot, _ := cmd.Flags().GetString(flagSuggestionSlot)

			suggestion, err := apiClient.ProposeSuggestion(context.Background(), handlers.SuggestionProposeParams{
				ContractorID:  contractorID,
				JobID:         jobID,
				SuggestedDate: date,
				SuggestedSlot: models.TimeSlot(slot),
			})
			if err != nil {
				return fmt.Errorf("error proposing suggestion: %w", err)
			}
			return printJSON(suggestion)
		},
	}
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	cmd.Flags().UintP(flagSuggestionJob, "j", 0, "Job ID")
	cmd.Flags().StringP(flagSuggestionDate, "d", "", "Suggested date (YYYY-MM-DD)")
	cmd.Flags().String(flagSuggestionSlot, "", "Suggested arrival window (7am-10am, 10am-2pm, 2pm-5pm)")
	_ = cmd.MarkFlagRequired(flagContractorID)
	_ = cmd.MarkFlagRequired(flagSuggestionJob)
	_ = cmd.MarkFlagRequired(flagSuggestionDate)
	_ = cmd.MarkFlagRequired(flagSuggestionSlot)
	return cmd
}

func respondSuggestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respond",
		Short: "Accept or decline a suggestion on behalf of the customer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			suggestionID, _ := cmd.Flags().GetUint(flagSuggestionID)
			accept, _ := cmd.Flags().GetBool(flagAccept)
			decline, _ := cmd.Flags().GetBool(flagDecline)

			if accept == decline {
				return fmt.Errorf("exactly one of --%s or --%s must be set", flagAccept, flagDecline)
			}

			outcome, err := apiClient.RespondSuggestion(context.Background(), handlers.SuggestionRespondParams{
				SuggestionID: suggestionID,
				Accept:       accept,
			})
			if err != nil {
				return fmt.Errorf("error responding to suggestion: %w", err)
			}
			return printJSON(outcome)
		},
	}
	cmd.Flags().UintP(flagSuggestionID, "i", 0, "Suggestion ID")
	cmd.Flags().Bool(flagAccept, false, "Accept the suggestion")
	cmd.Flags().Bool(flagDecline, false, "Decline the suggestion")
	_ = cmd.MarkFlagRequired(flagSuggestionID)
	return cmd
}

func getSuggestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a specific suggestion by its ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			suggestionID, _ := cmd.Flags().GetUint(flagSuggestionID)

			suggestion, err := apiClient.GetSuggestion(context.Background(), handlers.SuggestionGetParams{
				SuggestionID: suggestionID,
			})
			if err != nil {
				return fmt.Errorf("error getting suggestion: %w", err)
			}
			return printJSON(suggestion)
		},
	}
	cmd.Flags().UintP(flagSuggestionID, "i", 0, "Suggestion ID")
	_ = cmd.MarkFlagRequired(flagSuggestionID)
	return cmd
}

func listSuggestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions for a job or a contractor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobID, _ := cmd.Flags().GetUint(flagSuggestionJob)
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)
			page, _ := cmd.Flags().GetInt(flagSuggestionPage)

			switch {
			case jobID != 0:
				suggestions, err := apiClient.ListSuggestionsByJob(context.Background(), handlers.SuggestionListByJobParams{
					JobID: jobID,
				})
				if err != nil {
					return fmt.Errorf("error listing suggestions: %w", err)
				}
				return printJSON(suggestions)
			case contractorID != 0:
				suggestions, err := apiClient.ListSuggestionsByContractor(context.Background(), handlers.SuggestionListByContractorParams{
					ContractorID: contractorID,
					Page:         page,
				})
				if err != nil {
					return fmt.Errorf("error listing suggestions: %w", err)
				}
				return printJSON(suggestions)
			default:
				return fmt.Errorf("either --%s or --%s must be set", flagSuggestionJob, flagContractorID)
			}
		},
	}
	cmd.Flags().UintP(flagSuggestionJob, "j", 0, "Job ID to list suggestions for")
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID to list suggestions for")
	cmd.Flags().IntP(flagSuggestionPage, "g", 1, "Page number for pagination")
	return cmd
}
