package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldsmith/dispatch/pkg/api/v1/handlers"
)

// Optimization flag names
const (
	flagOptimizationID   = "id"
	flagOptimizationFile = "file"
	flagOptimizationPage = "page"
	flagApprove          = "approve"
	flagReject           = "reject"
)

// GetOptimizationsCmd returns the optimizations command tree
func GetOptimizationsCmd() *cobra.Command {
	optimizationsCmd := &cobra.Command{
		Use:   "optimizations",
		Short: "Manage route optimizations",
	}

	optimizationsCmd.AddCommand(submitOptimizationCmd())
	optimizationsCmd.AddCommand(getOptimizationCmd())
	optimizationsCmd.AddCommand(listOptimizationsCmd())
	optimizationsCmd.AddCommand(declineOptimizationCmd())
	optimizationsCmd.AddCommand(askCustomersCmd())
	optimizationsCmd.AddCommand(acceptOptimizationCmd())
	optimizationsCmd.AddCommand(respondOptimizationCmd())

	return optimizationsCmd
}

func submitOptimizationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a route optimization batch from a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString(flagOptimizationFile)

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("error reading optimization file: %w", err)
			}

			var params handlers.OptimizationSubmitParams
			if err := json.Unmarshal(data, &params); err != nil {
				return fmt.Errorf("error parsing optimization file: %w", err)
			}

			opt, err := apiClient.SubmitOptimization(context.Background(), params)
			if err != nil {
				return fmt.Errorf("error submitting optimization: %w", err)
			}
			return printJSON(opt)
		},
	}
	cmd.Flags().StringP(flagOptimizationFile, "f", "", "Path to a JSON file with the optimization batch")
	_ = cmd.MarkFlagRequired(flagOptimizationFile)
	return cmd
}

func getOptimizationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a specific optimization by its ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			optimizationID, _ := cmd.Flags().GetUint(flagOptimizationID)

			opt, err := apiClient.GetOptimization(context.Background(), handlers.OptimizationGetParams{
				OptimizationID: optimizationID,
			})
			if err != nil {
				return fmt.Errorf("error getting optimization: %w", err)
			}
			return printJSON(opt)
		},
	}
	cmd.Flags().UintP(flagOptimizationID, "i", 0, "Optimization ID")
	_ = cmd.MarkFlagRequired(flagOptimizationID)
	return cmd
}

func listOptimizationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a contractor's optimizations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)
			page, _ := cmd.Flags().GetInt(flagOptimizationPage)

			opts, err := apiClient.ListOptimizations(context.Background(), handlers.OptimizationListParams{
				ContractorID: contractorID,
				Page:         page,
			})
			if err != nil {
				return fmt.Errorf("error listing optimizations: %w", err)
			}
			return printJSON(opts)
		},
	}
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	cmd.Flags().IntP(flagOptimizationPage, "g", 1, "Page number for pagination")
	_ = cmd.MarkFlagRequired(flagContractorID)
	return cmd
}

func actionParams(cmd *cobra.Command) handlers.OptimizationActionParams {
	contractorID, _ := cmd.Flags().GetUint(flagContractorID)
	optimizationID, _ := cmd.Flags().GetUint(flagOptimizationID)
	return handlers.OptimizationActionParams{
		ContractorID:   contractorID,
		OptimizationID: optimizationID,
	}
}

func addActionFlags(cmd *cobra.Command) {
	cmd.Flags().UintP(flagOptimizationID, "i", 0, "Optimization ID")
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	_ = cmd.MarkFlagRequired(flagOptimizationID)
	_ = cmd.MarkFlagRequired(flagContractorID)
}

func declineOptimizationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decline",
		Short: "Decline an optimization batch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := apiClient.DeclineOptimization(context.Background(), actionParams(cmd))
			if err != nil {
				return fmt.Errorf("error declining optimization: %w", err)
			}
			return printJSON(outcome)
		},
	}
	addActionFlags(cmd)
	return cmd
}

func askCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask-customers",
		Short: "Send approval-flagged suggestions out to the affected customers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := apiClient.AskCustomers(context.Background(), actionParams(cmd))
			if err != nil {
				return fmt.Errorf("error asking customers: %w", err)
			}
			return printJSON(outcome)
		},
	}
	addActionFlags(cmd)
	return cmd
}

func acceptOptimizationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Accept an optimization and apply the batch to its jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := apiClient.AcceptOptimization(context.Background(), actionParams(cmd))
			if err != nil {
				return fmt.Errorf("error accepting optimization: %w", err)
			}
			return printJSON(outcome)
		},
	}
	addActionFlags(cmd)
	return cmd
}

func respondOptimizationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respond",
		Short: "Record a customer's answer on one optimization suggestion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			suggestionID, _ := cmd.Flags().GetUint(flagSuggestionID)
			approve, _ := cmd.Flags().GetBool(flagApprove)
			reject, _ := cmd.Flags().GetBool(flagReject)

			if approve == reject {
				return fmt.Errorf("exactly one of --%s or --%s must be set", flagApprove, flagReject)
			}

			outcome, err := apiClient.RespondOptimizationSuggestion(context.Background(), handlers.OptimizationRespondSuggestionParams{
				SuggestionID: suggestionID,
				Approved:     approve,
			})
			if err != nil {
				return fmt.Errorf("error recording customer response: %w", err)
			}
			return printJSON(outcome)
		},
	}
	cmd.Flags().UintP(flagSuggestionID, "i", 0, "Optimization suggestion ID")
	cmd.Flags().Bool(flagApprove, false, "Approve the slot change")
	cmd.Flags().Bool(flagReject, false, "Reject the slot change")
	_ = cmd.MarkFlagRequired(flagSuggestionID)
	return cmd
}
