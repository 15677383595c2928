package main

import (
	"context"
	"github.com/Odunjoy/NaijaStoic-props/ai"
	"github.com/Odunjoy/NaijaStoic-props/api"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/production"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := ai.New(context.Background(), config.TheConfig)
			if err != nil {
				return err
			}
			store, err := seo.Load(config.TheConfig.SeoCsv)
			if err != nil {
				return err
			}
			tr := production.NewTransformer(store, gen, production.OptionsFromConfig(config.TheConfig))
			if addr == "" {
				addr = config.TheConfig.Listen
			}
			return api.New(store, tr, config.TheConfig.Output).Start(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", "", "listen address (default LISTEN)")
	return cmd
}
