package transport

import (
	"github.com/hypebeast/go-osc/osc"
)

// Sender is the fire-and-forget wire boundary. The daemon never waits for
// any kind of acknowledgement; a dropped datagram just means the display
// catches up on the next tick.
type Sender interface {
	Send(text string, immediate, triggerSfx bool) error
}

// OscClient delivers payloads to the display endpoint as a single OSC
// message over UDP.
type OscClient struct {
	client *osc.Client
}

func NewOscClient(host string, port int) *OscClient {
	return &OscClient{
		client: osc.NewClient(host, port),
	}
}

// Send transmits the composed string. An empty string instructs the display
// to clear itself.
func (c *OscClient) Send(text string, immediate, triggerSfx bool) error {
	msg := osc.NewMessage("/display/input")
	msg.Append(text)
	msg.Append(immediate)
	msg.Append(triggerSfx)
	return c.client.Send(msg)
}
