package main

import (
	"fmt"

	"github.com/phanxgames/thumbstick"
	"github.com/spf13/cobra"
)

func newRadiusCmd() *cobra.Command {
	var (
		width, height           float64
		stickWidth, stickHeight float64
		constraint              string
	)
	cmd := &cobra.Command{
		Use:   "radius",
		Short: "print the stick radius for a control size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := thumbstick.ParseMotionConstraint(constraint)
			if err != nil {
				return err
			}
			r := thumbstick.ComputeRadius(width, height, stickWidth/2, stickHeight/2, c)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", labelStyle.Render("radius"), valueStyle.Render(fmt.Sprintf("%g", r)))
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "control width")
	cmd.Flags().Float64Var(&height, "height", 0, "control height")
	cmd.Flags().Float64Var(&stickWidth, "stick-width", 0, "stick width")
	cmd.Flags().Float64Var(&stickHeight, "stick-height", 0, "stick height")
	cmd.Flags().StringVar(&constraint, "constraint", "none", "motion constraint (none, horizontal, vertical)")
	return cmd
}
