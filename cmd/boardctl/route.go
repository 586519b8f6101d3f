package main

import (
	"github.com/spf13/cobra"
)

var maxStepsFlag int

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan the transit tour",
}

var routeWaypointsCmd = &cobra.Command{
	Use:   "waypoints",
	Short: "List the tour stops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wps, err := newClient().Waypoints(newContext(cmd))
		if err != nil {
			return err
		}
		if formatFlag == "json" {
			return writeJSON(cmd.OutOrStdout(), wps)
		}
		renderWaypoints(cmd.OutOrStdout(), wps)
		return nil
	},
}

var routePlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Order the stops and fetch transit directions for each leg",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := newClient().PlanRoute(newContext(cmd))
		if plan == nil {
			return err
		}
		if formatFlag == "json" {
			if werr := writeJSON(cmd.OutOrStdout(), plan); werr != nil {
				return werr
			}
			return err
		}
		renderPlan(cmd.OutOrStdout(), plan, maxStepsFlag)
		return err
	},
}

func init() {
	routePlanCmd.Flags().IntVar(&maxStepsFlag, "max-steps", 2, "Steps shown per segment")
	routeCmd.AddCommand(routeWaypointsCmd, routePlanCmd)
	rootCmd.AddCommand(routeCmd)
}
