package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/G00gleKid/demo-code/pkg/auth"
	"github.com/G00gleKid/demo-code/pkg/metrics"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/server"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.openDB(); err != nil {
				return err
			}
			app.logger.Info("Schema migrated")
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	var email, password, fullName, teamName string
	var teamID uint

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a team lead, optionally with a new team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openDB()
			if err != nil {
				return err
			}
			if teamID == 0 {
				if teamName == "" {
					return fmt.Errorf("either --team-id or --team-name is required")
				}
				team := &models.Team{Name: teamName}
				if err := store.CreateTeam(app.ctx, team); err != nil {
					return fmt.Errorf("failed to create team: %w", err)
				}
				teamID = team.ID
				app.logger.Info("Team created", zap.Uint("team_id", teamID), zap.String("name", teamName))
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user := &models.User{
				Email:        email,
				PasswordHash: hash,
				FullName:     fullName,
				TeamID:       teamID,
				IsActive:     true,
			}
			if err := store.CreateUser(app.ctx, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			fmt.Printf("Created user %s (id %d) in team %d\n", user.Email, user.ID, user.TeamID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&fullName, "name", "Team Lead", "Full name")
	cmd.Flags().UintVar(&teamID, "team-id", 0, "Existing team id")
	cmd.Flags().StringVar(&teamName, "team-name", "", "Create a new team with this name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <meeting-id>",
		Short: "Run role assignment for a meeting and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid meeting id %q", args[0])
			}

			store, err := app.openDB()
			if err != nil {
				return err
			}
			catalog, err := server.LoadCatalog(app.cfg)
			if err != nil {
				return err
			}
			teamID, err := store.MeetingTeamID(app.ctx, uint(id))
			if err != nil {
				return err
			}

			eng := server.NewEngine(app.cfg, store, server.NewScorer(app.cfg, catalog), app.logger, metrics.NewManager())
			result, err := eng.AssignRoles(app.ctx, teamID, uint(id))
			if err != nil {
				return fmt.Errorf("assignment failed: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective role catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := server.LoadCatalog(app.cfg)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(catalog.ToFile()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func teamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams with their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openDB()
			if err != nil {
				return err
			}
			teams, err := store.ListTeams(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list teams: %w", err)
			}
			for _, t := range teams {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", t.ID, t.Name)
			}
			return nil
		},
	}
}
