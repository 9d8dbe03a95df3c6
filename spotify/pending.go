package spotify

import (
	"context"
	"encoding/json"
)

// Callback receives the outcome of an asynchronous call, exactly once.
// Exactly one of body and err is set, except for an empty 2xx body where
// both are nil.
type Callback func(body json.RawMessage, err error)

// Pending is the result of an asynchronous call.
type Pending struct {
	done chan struct{}
	body json.RawMessage
	err  error
}

// Done is closed once the result is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call finishes and returns its body or error.
func (p *Pending) Wait() (json.RawMessage, error) {
	<-p.done
	return p.body, p.err
}

func goPending(ctx context.Context, fn func(ctx context.Context) (json.RawMessage, error)) *Pending {
	p := &Pending{done: make(chan struct{})}

	go func() {
		defer close(p.done)
		p.body, p.err = fn(ctx)
	}()

	return p
}

func (p *Pending) notify(callback Callback) {
	go func() {
		body, err := p.Wait()
		if err != nil {
			callback(nil, err)
			return
		}
		callback(body, nil)
	}()
}
