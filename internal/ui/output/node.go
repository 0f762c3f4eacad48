package output

import (
	"context"

	"github.com/grindlemire/graft"
)

// PrinterNodeID is the unique identifier for the terminal printer Graft node.
const PrinterNodeID graft.ID = "ui.output.printer"

func init() {
	graft.Register(graft.Node[*Printer]{
		ID:        PrinterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Printer, error) {
			return NewPrinter(nil), nil
		},
	})
}
