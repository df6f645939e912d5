package main

import (
	"time"

	"github.com/spf13/cobra"

	"askrelay/internal/config"
	"askrelay/internal/httpapi"
	"askrelay/internal/relay"
)

func newRelayCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "relay",
		Short:   "Serve POST /api/ask and forward it to the scoring endpoint",
		Example: "  AZURE_ML_ENDPOINT=https://example.inference.ml.azure.com/score AZURE_ML_KEY=... askrelay relay",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := a.cfg.Relay
			if addr != "" {
				rc.Addr = addr
			}
			fwd, err := relay.New(relay.Options{
				UpstreamURL: rc.UpstreamURL,
				Key:         rc.UpstreamKey,
				Timeout:     time.Duration(rc.TimeoutSeconds) * time.Second,
				Logger:      a.log.With().Str("component", "relay").Logger(),
			})
			if err != nil {
				return err
			}
			if rc.UpstreamKey == "" {
				a.log.Warn().Msg(config.EnvUpstreamKey + " is empty, requests go upstream without Authorization")
			}
			httpapi.SetRelayMaxBodyBytes(rc.MaxBodyBytes)
			h := httpapi.NewRelayMux(fwd, corsOptions(rc.CORS))
			a.log.Info().Str("upstream", fwd.UpstreamURL()).Msg("relay configured")
			return serve(cmd.Context(), a.log, "relay", rc.Addr, h)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default "+config.DefaultRelayAddr+")")
	return cmd
}

func corsOptions(c config.CORSConfig) httpapi.CORSOptions {
	return httpapi.CORSOptions{
		Enabled:        !c.Disabled,
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: c.AllowedMethods,
		AllowedHeaders: c.AllowedHeaders,
	}
}
