package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/pkg/api/v1/handlers"
)

// Job flag names
const (
	flagJobID        = "id"
	flagContractorID = "contractor-id"
	flagClientID     = "client-id"
	flagJobDate      = "date"
	flagJobTime      = "time"
	flagJobDuration  = "duration"
	flagJobLimit     = "limit"
	flagJobOffset    = "offset"
	flagExcludeJobID = "exclude-job-id"
)

// GetJobsCmd returns the jobs command tree
func GetJobsCmd() *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage jobs",
	}

	jobsCmd.AddCommand(getJobCmd())
	jobsCmd.AddCommand(listJobsCmd())
	jobsCmd.AddCommand(createJobCmd())
	jobsCmd.AddCommand(cancelJobCmd())
	jobsCmd.AddCommand(planShiftCmd())
	jobsCmd.AddCommand(rescheduleJobCmd())

	return jobsCmd
}

func getJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a specific job by its ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetString(flagJobID)
			if err != nil {
				return fmt.Errorf("error getting job ID flag: %w", err)
			}

			job, err := apiClient.GetJob(context.Background(), id)
			if err != nil {
				return fmt.Errorf("error getting job: %w", err)
			}
			return printJSON(job)
		},
	}
	cmd.Flags().StringP(flagJobID, "i", "", "Job ID")
	_ = cmd.MarkFlagRequired(flagJobID)
	return cmd
}

func listJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt(flagJobLimit)
			offset, _ := cmd.Flags().GetInt(flagJobOffset)

			jobs, err := apiClient.ListJobs(context.Background(), &models.ListOptions{
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return fmt.Errorf("error listing jobs: %w", err)
			}
			return printJSON(jobs)
		},
	}
	cmd.Flags().Int(flagJobLimit, 0, "Limit the number of jobs returned")
	cmd.Flags().Int(flagJobOffset, 0, "Offset for paginating jobs")
	return cmd
}

func createJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a new job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)
			clientID, _ := cmd.Flags().GetUint(flagClientID)
			date, _ := cmd.Flags().GetString(flagJobDate)
			clock, _ := cmd.Flags().GetString(flagJobTime)
			duration, _ := cmd.Flags().GetInt(flagJobDuration)

			params := handlers.JobCreateParams{
				ContractorID:    contractorID,
				ClientID:        clientID,
				ScheduledDate:   date,
				DurationMinutes: duration,
			}
			if clock != "" {
				params.ScheduledTime = &clock
			}

			resp, err := apiClient.CreateJob(context.Background(), params)
			if err != nil {
				return fmt.Errorf("error creating job: %w", err)
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	cmd.Flags().Uint(flagClientID, 0, "Client user ID")
	cmd.Flags().StringP(flagJobDate, "d", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringP(flagJobTime, "t", "", "Scheduled start time (HH:MM, optional)")
	cmd.Flags().Int(flagJobDuration, 0, "Duration in minutes")
	_ = cmd.MarkFlagRequired(flagContractorID)
	_ = cmd.MarkFlagRequired(flagClientID)
	_ = cmd.MarkFlagRequired(flagJobDate)
	return cmd
}

func cancelJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString(flagJobID)
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)

			job, err := apiClient.CancelJob(context.Background(), contractorID, id)
			if err != nil {
				return fmt.Errorf("error cancelling job: %w", err)
			}
			return printJSON(job)
		},
	}
	cmd.Flags().StringP(flagJobID, "i", "", "Job ID")
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	_ = cmd.MarkFlagRequired(flagJobID)
	_ = cmd.MarkFlagRequired(flagContractorID)
	return cmd
}

func planShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview where a desired start time would land on a contractor's day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)
			date, _ := cmd.Flags().GetString(flagJobDate)
			clock, _ := cmd.Flags().GetString(flagJobTime)
			duration, _ := cmd.Flags().GetInt(flagJobDuration)
			excludeJobID, _ := cmd.Flags().GetUint(flagExcludeJobID)

			plan, err := apiClient.PlanShift(context.Background(), handlers.SchedulePlanParams{
				ContractorID:    contractorID,
				Date:            date,
				Time:            clock,
				DurationMinutes: duration,
				ExcludeJobID:    excludeJobID,
			})
			if err != nil {
				return fmt.Errorf("error planning shift: %w", err)
			}
			return printJSON(plan)
		},
	}
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	cmd.Flags().StringP(flagJobDate, "d", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringP(flagJobTime, "t", "", "Desired start time (HH:MM)")
	cmd.Flags().Int(flagJobDuration, 0, "Duration in minutes")
	cmd.Flags().Uint(flagExcludeJobID, 0, "Job ID to leave out of conflict detection")
	_ = cmd.MarkFlagRequired(flagContractorID)
	_ = cmd.MarkFlagRequired(flagJobDate)
	_ = cmd.MarkFlagRequired(flagJobTime)
	return cmd
}

func rescheduleJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Move a job to a new date and time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobID, _ := cmd.Flags().GetUint(flagJobID)
			contractorID, _ := cmd.Flags().GetUint(flagContractorID)
			date, _ := cmd.Flags().GetString(flagJobDate)
			clock, _ := cmd.Flags().GetString(flagJobTime)

			resp, err := apiClient.SetSchedule(context.Background(), handlers.ScheduleSetParams{
				ContractorID: contractorID,
				JobID:        jobID,
				Date:         date,
				Time:         clock,
			})
			if err != nil {
				return fmt.Errorf("error rescheduling job: %w", err)
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	cmd.Flags().UintP(flagContractorID, "c", 0, "Contractor user ID")
	cmd.Flags().StringP(flagJobDate, "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringP(flagJobTime, "t", "", "New start time (HH:MM)")
	_ = cmd.MarkFlagRequired(flagJobID)
	_ = cmd.MarkFlagRequired(flagContractorID)
	_ = cmd.MarkFlagRequired(flagJobDate)
	_ = cmd.MarkFlagRequired(flagJobTime)
	return cmd
}
