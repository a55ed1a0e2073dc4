package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"schrodinger/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream simulation frames over a websocket at /ws",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.params
			if cmd.Flags().Changed("addr") {
				p.Server.Addr = addr
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			}
			return server.NewServer(p.Server.Addr, upgrader, p).Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address (overrides config)")
	return cmd
}
