package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// carrierCmd groups the carrier management subcommands.
func carrierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carrier",
		Short: "Manage carrier accounts",
	}

	cmd.AddCommand(verifyCarrierCmd())

	return cmd
}

// verifyCarrierCmd toggles the guarantor and vehicle verification flags on
// a carrier account.
func verifyCarrierCmd() *cobra.Command {
	var guarantor, vehicle, revoke bool

	cmd := &cobra.Command{
		Use:   "verify <id>",
		Short: "Set or revoke a carrier's verification details",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			verifyCarrier(cmd, args[0], guarantor, vehicle, revoke)
		},
	}

	cmd.Flags().BoolVarP(&guarantor, "guarantor", "g", false, "Toggle the guarantor verification flag")
	cmd.Flags().BoolVarP(&vehicle, "vehicle", "v", false, "Toggle the vehicle verification flag")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "Revoke the verification instead of granting it")

	return cmd
}

func verifyCarrier(cmd *cobra.Command, carrierID string, guarantor, vehicle, revoke bool) {
	if !guarantor && !vehicle {
		cmd.PrintErrln("Error: Specify at least one of --guarantor or --vehicle.")
		return
	}

	manager, api, ok := requireSession(cmd)
	if !ok {
		return
	}

	verified := !revoke
	if guarantor {
		log.Info().Str("carrier", carrierID).Bool("verified", verified).Msg("Updating guarantor details")
		if err := api.SetGuarantorVerified(cmd.Context(), carrierID, verified); err != nil {
			reportRequestError(cmd, manager, err)
			return
		}
		cmd.Println("Guarantor details updated.")
	}
	if vehicle {
		log.Info().Str("carrier", carrierID).Bool("verified", verified).Msg("Updating vehicle details")
		if err := api.SetVehicleVerified(cmd.Context(), carrierID, verified); err != nil {
			reportRequestError(cmd, manager, err)
			return
		}
		cmd.Println("Vehicle details updated.")
	}
}
