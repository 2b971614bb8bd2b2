package chain

import "context"

// StaticWallet reports a fixed connection state. The real connection
// handshake lives in the UI layer; the gateway only needs the precondition.
type StaticWallet struct {
	IsConnected bool
}

func (w *StaticWallet) Connected() bool {
	return w.IsConnected
}

func (w *StaticWallet) Connect(ctx context.Context) error {
	w.IsConnected = true
	return nil
}
