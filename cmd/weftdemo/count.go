package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

func countCmd() *cobra.Command {
	var clicks int

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Run the counter app headless",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := &host.Sink{}
			sys := weft.NewSystem(func(ctx weft.Context) {
				if weft.IsRefresh(ctx) {
					sink.Reset()
				}
				counterApp(host.WithSink(ctx, sink))
			})

			sys.Refresh()

			for i := 0; i < clicks; i++ {
				var target weft.RoutableNodeID
				for _, line := range sink.Lines() {
					if line.Kind == host.KindButton {
						target = line.Node
					}
				}
				if !target.Valid() {
					return fmt.Errorf("no button rendered")
				}
				sys.DispatchTargeted(&host.ClickEvent{}, target)
			}

			for _, line := range sink.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&clicks, "clicks", 5, "number of clicks to dispatch")
	return cmd
}
